// Package notebook implements the in-memory notebook document: an ordered
// sequence of cells, the shared execution context and the document-wide
// execution counter.
//
// Document is the single mutation boundary for cells; there is no independent
// cell lifecycle. Every operation returns a structured result record from the
// core package and never panics or returns an error across the API, matching
// the propagation policy of the engine. A single mutex serializes all
// mutation, query and execution calls so concurrent callers cannot observe a
// torn history.
package notebook
