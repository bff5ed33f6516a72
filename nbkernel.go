// Package nbkernel provides a high-level façade over the notebook engine and
// its services (sessions, persistence & logging) enabling rapid construction
// of notebook-backed tools. Most applications interact with this package by:
//  1. Creating an NBKernel via New() (optionally overriding default in-memory services)
//  2. Adding and executing cells on the default session (or named sessions)
//  3. Saving, loading and exporting notebooks through the configured store
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a filesystem store and a
// structured logger.
package nbkernel

import (
	"context"
	"time"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/engine"
	"github.com/hupe1980/nbkernel/logging"
	"github.com/hupe1980/nbkernel/persist"
	"github.com/hupe1980/nbkernel/session"
)

// DefaultSession is the session id used by the convenience wrappers.
const DefaultSession = "default"

// Options configures the NBKernel instance.
type Options struct {
	// NotebookDir, when set, stores saved notebooks under this directory.
	// Takes precedence over Store.
	NotebookDir string

	// Store persists saved notebooks and exports. Defaults to in-memory.
	Store core.NotebookStore

	// Sessions manages the live notebook sessions. Defaults to in-memory.
	Sessions session.Store

	// NewExecutor builds the execution context backing each new session.
	// Defaults to the embedded Go interpreter.
	NewExecutor func() core.Executor

	// ExecutionTimeout bounds a single cell or whole-notebook run. Zero
	// means no deadline beyond the caller's context.
	ExecutionTimeout time.Duration

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// NBKernel is the high-level façade aggregating the underlying engine and
// services.
type NBKernel struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new NBKernel instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *NBKernel {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.NotebookDir != "" {
		opts.Store = persist.NewFSStore(opts.NotebookDir)
	}

	e := engine.New(func(o *engine.Options) {
		if opts.Store != nil {
			o.Store = opts.Store
		}
		if opts.Sessions != nil {
			o.Sessions = opts.Sessions
		}
		if opts.NewExecutor != nil {
			o.NewExecutor = opts.NewExecutor
		}
		o.ExecutionTimeout = opts.ExecutionTimeout
		o.Logger = opts.Logger
	})

	return &NBKernel{opts: opts, engine: e}
}

// Engine exposes the underlying engine for callers that manage multiple
// sessions explicitly.
func (k *NBKernel) Engine() *engine.Engine { return k.engine }

// AddMarkdown appends a markdown cell to the default session's notebook.
func (k *NBKernel) AddMarkdown(content string) (core.CreateCellResult, error) {
	return k.engine.CreateCell(DefaultSession, core.CellTypeMarkdown, content)
}

// AddCode appends a code cell to the default session's notebook.
func (k *NBKernel) AddCode(content string) (core.CreateCellResult, error) {
	return k.engine.CreateCell(DefaultSession, core.CellTypeCode, content)
}

// Execute runs one code cell of the default session.
func (k *NBKernel) Execute(ctx context.Context, index int) (core.ExecuteCellResult, error) {
	return k.engine.ExecuteCell(ctx, DefaultSession, index)
}

// ExecuteAll runs every code cell of the default session top to bottom.
func (k *NBKernel) ExecuteAll(ctx context.Context) (core.ExecuteAllResult, error) {
	return k.engine.ExecuteAll(ctx, DefaultSession)
}

// Restart resets the default session's execution context.
func (k *NBKernel) Restart() (core.RestartKernelResult, error) {
	return k.engine.RestartKernel(DefaultSession)
}

// Save serializes the default session's notebook to the configured store.
func (k *NBKernel) Save(name string) (core.SaveResult, error) {
	return k.engine.SaveNotebook(DefaultSession, name)
}

// Load replaces the default session's notebook with a stored one.
func (k *NBKernel) Load(name string) (core.LoadResult, error) {
	return k.engine.LoadNotebook(DefaultSession, name)
}

// Export renders the default session's notebook in the requested format.
func (k *NBKernel) Export(name string, format persist.ExportFormat) (core.ExportResult, error) {
	return k.engine.ExportNotebook(DefaultSession, name, format)
}
