// Package kernel contains the embedded interpreter implementing core.Executor.
//
// The interpreter is backed by yaegi (github.com/traefik/yaegi), evaluating
// Go source against a namespace that persists across calls, which is the
// defining property of a notebook kernel as opposed to a stateless runner.
// Execution follows REPL semantics: a trailing line that parses as a bare
// expression is evaluated and surfaced as the cell's result value, anything
// else runs as statements for side effects only.
//
// Standard output written by interpreted code is redirected into an in-memory
// buffer for the duration of each call. Interpreter errors and panics are
// converted into result data and never propagate to the caller.
package kernel
