// Package persist contains the notebook persistence layer: the codec between
// in-memory documents and the nbformat-4 JSON file structure, one-way
// exporters to source and Markdown reports, and concrete core.NotebookStore
// implementations (filesystem, in-memory).
//
// The canonical NotebookStore interface lives in the core package to keep
// domain contracts central. Serialization is always attempted and validated
// before any byte reaches a store, so a failing marshal can never leave a
// partially written file behind.
package persist
