package core

import (
	"context"
	"fmt"
)

// ExecutionResult is the outcome of running one code cell. Exactly one of
// "Err populated" or "no error" applies; Stdout and Result may both be
// present in an error-free run.
type ExecutionResult struct {
	Stdout string // Captured standard output, may be empty
	Result any    // Value of a trailing bare expression, nil otherwise
	Err    string // Full formatted error trace, empty on success
}

// Failed reports whether the run ended in an execution error.
func (r ExecutionResult) Failed() bool { return r.Err != "" }

// Executor is an embedded interpreter with a namespace that persists across
// Execute calls within one session. Implementations must convert every
// interpreter failure into ExecutionResult.Err rather than propagating it;
// partial side effects of a failed run remain in the namespace (notebook
// semantics, no rollback).
type Executor interface {
	// Execute runs source against the persistent namespace. A trailing line
	// that parses as a bare expression surfaces its value as Result; any
	// other source runs for side effects only. Source that is empty after
	// trimming is a no-op returning the zero result.
	Execute(ctx context.Context, source string) ExecutionResult

	// Reset discards all bindings so that a following Execute observes a
	// namespace as if freshly created.
	Reset() error

	// UserVariables returns a string-rendered view of all user bindings,
	// excluding reserved interpreter symbols. It never fails; values that
	// cannot be rendered fall back to a type-name placeholder.
	UserVariables() map[string]string
}

// RenderValue renders an arbitrary value as display text, recovering from
// panicking String implementations with a type-name placeholder.
func RenderValue(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", v)
		}
	}()
	return fmt.Sprintf("%v", v)
}
