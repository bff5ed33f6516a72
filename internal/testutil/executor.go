package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/nbkernel/core"
)

// ScriptedExecutor is a core.Executor replaying queued results in order.
// When the queue is exhausted it echoes the source back as the result, which
// keeps simple tests readable without scripting every call. It records every
// executed source and counts resets.
type ScriptedExecutor struct {
	mu        sync.Mutex
	queue     []core.ExecutionResult
	Executed  []string
	Resets    int
	Variables map[string]string
}

// Interface compliance (compile-time assertion)
var _ core.Executor = (*ScriptedExecutor)(nil)

// NewScriptedExecutor creates an executor that will replay the given results.
func NewScriptedExecutor(results ...core.ExecutionResult) *ScriptedExecutor {
	return &ScriptedExecutor{queue: results, Variables: map[string]string{}}
}

// Execute pops the next scripted result, or echoes the source.
func (e *ScriptedExecutor) Execute(_ context.Context, source string) core.ExecutionResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Executed = append(e.Executed, source)
	if len(e.queue) > 0 {
		res := e.queue[0]
		e.queue = e.queue[1:]
		return res
	}
	return core.ExecutionResult{Result: source}
}

// Reset counts the reset and clears the variable snapshot.
func (e *ScriptedExecutor) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Resets++
	e.Variables = map[string]string{}
	return nil
}

// UserVariables returns the configured snapshot.
func (e *ScriptedExecutor) UserVariables() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot := make(map[string]string, len(e.Variables))
	for k, v := range e.Variables {
		snapshot[k] = v
	}
	return snapshot
}

// SetVariable seeds the variable snapshot.
func (e *ScriptedExecutor) SetVariable(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Variables[name] = value
}
