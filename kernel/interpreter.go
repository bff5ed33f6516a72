package kernel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/parser"
	"io"
	"reflect"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/logging"
)

// reservedPrefix marks interpreter-internal bindings excluded from any
// user-facing namespace view.
const reservedPrefix = "_"

// mainScope is the import path under which REPL-level declarations live.
const mainScope = "main"

// Options configures an Interpreter.
type Options struct {
	// Logger receives debug output for evaluation and reset events.
	Logger logging.Logger
	// UseStdlib controls whether the Go standard library symbols are loaded
	// into the interpreter. Enabled by default; disable for a bare namespace.
	UseStdlib bool
}

// Interpreter is a yaegi-backed core.Executor with a persistent namespace.
// All methods serialize on an internal mutex; a single Interpreter must never
// run two cells at once because the stdout redirection is process-local to
// the underlying yaegi instance.
type Interpreter struct {
	mu     sync.Mutex
	opts   Options
	interp *interp.Interpreter
	stdout *swappableWriter
}

// Interface compliance (compile-time assertion)
var _ core.Executor = (*Interpreter)(nil)

// New constructs an Interpreter with a fresh namespace.
func New(optFns ...func(o *Options)) *Interpreter {
	opts := Options{Logger: logging.NoOpLogger{}, UseStdlib: true}
	for _, fn := range optFns {
		fn(&opts)
	}
	k := &Interpreter{opts: opts, stdout: newSwappableWriter()}
	k.rebuild()
	return k
}

// rebuild discards the current yaegi instance and creates a fresh one bound
// to the swappable stdout writer. Caller must hold the mutex (or be the
// constructor).
func (k *Interpreter) rebuild() {
	i := interp.New(interp.Options{Stdout: k.stdout, Stderr: k.stdout})
	if k.opts.UseStdlib {
		if err := i.Use(stdlib.Symbols); err != nil {
			// Symbols ship with yaegi itself; a failure here means a broken
			// toolchain rather than user input, surface it loudly.
			panic(fmt.Sprintf("kernel: loading stdlib symbols: %v", err))
		}
	}
	k.interp = i
}

// Execute runs source against the persistent namespace following the REPL
// evaluation rule. See core.Executor for the full contract.
func (k *Interpreter) Execute(ctx context.Context, source string) core.ExecutionResult {
	k.mu.Lock()
	defer k.mu.Unlock()

	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return core.ExecutionResult{}
	}

	var buf bytes.Buffer
	k.stdout.redirect(&buf)
	defer k.stdout.restore()

	res := k.run(ctx, trimmed)
	res.Stdout = buf.String()
	return res
}

// run performs the two-phase REPL evaluation. Stdout is already redirected.
func (k *Interpreter) run(ctx context.Context, source string) (res core.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			res.Result = nil
			res.Err = fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
		}
	}()

	lines := strings.Split(source, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])

	if !isExpression(last) {
		// Statement-only source: run everything, no result value.
		if _, err := k.interp.EvalWithContext(ctx, source); err != nil {
			res.Err = formatEvalError(err)
		}
		return res
	}

	if len(lines) > 1 {
		body := strings.Join(lines[:len(lines)-1], "\n")
		if _, err := k.interp.EvalWithContext(ctx, body); err != nil {
			res.Err = formatEvalError(err)
			return res
		}
	}
	v, err := k.interp.EvalWithContext(ctx, last)
	if err != nil {
		res.Err = formatEvalError(err)
		return res
	}
	if v.IsValid() && v.CanInterface() {
		res.Result = v.Interface()
	}
	k.opts.Logger.Debug("evaluated trailing expression", "expr", last)
	return res
}

// Reset discards every binding by replacing the yaegi instance wholesale. A
// following Execute observes a namespace as if freshly created.
func (k *Interpreter) Reset() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rebuild()
	k.opts.Logger.Debug("interpreter namespace reset")
	return nil
}

// UserVariables returns a string-rendered snapshot of the REPL-level
// bindings, excluding reserved interpreter symbols. It never fails;
// unrenderable values fall back to a type-name placeholder.
func (k *Interpreter) UserVariables() map[string]string {
	k.mu.Lock()
	defer k.mu.Unlock()

	vars := make(map[string]string)
	for _, scope := range k.interp.Symbols(mainScope) {
		for name, value := range scope {
			if strings.HasPrefix(name, reservedPrefix) {
				continue
			}
			vars[name] = renderSymbol(value)
		}
	}
	return vars
}

// isExpression reports whether the line parses alone as a standalone Go
// expression, the condition for surfacing it as the cell's result value.
func isExpression(line string) bool {
	if line == "" {
		return false
	}
	_, err := parser.ParseExpr(line)
	return err == nil
}

// renderSymbol renders a namespace binding, guarding against values that
// cannot cross the reflection boundary.
func renderSymbol(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}
	if !v.CanInterface() {
		return "<" + v.Type().String() + ">"
	}
	return core.RenderValue(v.Interface())
}

// formatEvalError renders a yaegi evaluation failure, including the
// interpreted stack for runtime panics.
func formatEvalError(err error) string {
	var p interp.Panic
	if errors.As(err, &p) {
		return fmt.Sprintf("panic: %v\n\n%s", p.Value, p.Stack)
	}
	return err.Error()
}

// swappableWriter routes interpreter output to a per-call destination. The
// yaegi instance captures the writer once at construction, so redirection
// happens by swapping the target instead of the writer itself.
type swappableWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSwappableWriter() *swappableWriter {
	return &swappableWriter{w: io.Discard}
}

// Write forwards to the current target.
func (s *swappableWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// redirect points output at w for the duration of one call.
func (s *swappableWriter) redirect(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// restore discards output between calls.
func (s *swappableWriter) restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = io.Discard
}
