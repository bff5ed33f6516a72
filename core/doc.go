// Package core provides the foundational domain types, interfaces and result
// records used by nbkernel. It defines the core abstractions for:
//
//   - Cells (markdown and code units of notebook content)
//   - Outputs (stream / result / error records attached to code cells)
//   - Executors (embedded interpreters with a persistent namespace)
//   - Notebook stores (pluggable persistence backends for notebook files)
//   - The structured error taxonomy and per-operation result records
//
// The package intentionally keeps implementation concerns (interpreters,
// persistence, engine orchestration) out of scope, exposing small interfaces
// to enable custom backends and extensions. All exported identifiers include
// concise documentation to aid discoverability and external consumption.
package core
