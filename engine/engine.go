package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/kernel"
	"github.com/hupe1980/nbkernel/logging"
	"github.com/hupe1980/nbkernel/notebook"
	"github.com/hupe1980/nbkernel/persist"
	"github.com/hupe1980/nbkernel/session"
)

// Options configures an Engine instance using the functional options pattern.
// Default implementations are provided for all services so a zero-config
// engine is immediately usable for development and testing.
type Options struct {
	// Sessions manages the live notebook sessions. Defaults to an in-memory
	// store whose documents are built from NewExecutor and Logger.
	Sessions session.Store

	// Store persists saved notebooks and exports. Defaults to an in-memory
	// implementation; production deployments supply persist.NewFSStore.
	Store core.NotebookStore

	// NewExecutor builds the execution context backing each new session.
	// Defaults to the embedded Go interpreter.
	NewExecutor func() core.Executor

	// ExecutionTimeout bounds a single ExecuteCell or ExecuteAll run. Zero
	// means no deadline beyond the caller's context.
	ExecutionTimeout time.Duration

	// Logger provides structured logging. Defaults to NoOp.
	Logger logging.Logger
}

// Engine coordinates the complete lifecycle of notebook sessions: cell
// mutations, code execution against each session's persistent interpreter,
// and saving/loading/exporting notebooks through the persistence layer.
//
// All per-session operations resolve the session lazily, so callers never
// distinguish first from repeated use of an identifier. The engine is safe
// for concurrent use; per-document consistency is guaranteed by the
// documents themselves.
type Engine struct {
	sessions session.Store
	manager  *persist.Manager
	timeout  time.Duration
	logger   logging.Logger
}

// New creates an Engine with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Store:       persist.NewInMemoryStore(),
		NewExecutor: func() core.Executor { return kernel.New() },
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewInMemoryStore(func(o *session.Options) {
			o.NewDocument = func() *notebook.Document {
				return notebook.New(func(o *notebook.Options) {
					o.Executor = opts.NewExecutor()
					o.Logger = opts.Logger
				})
			}
		})
	}
	return &Engine{
		sessions: opts.Sessions,
		manager:  persist.NewManager(opts.Store, func(o *persist.Options) { o.Logger = opts.Logger }),
		timeout:  opts.ExecutionTimeout,
		logger:   opts.Logger,
	}
}

// Document returns the live notebook document of a session, creating the
// session on first use.
func (e *Engine) Document(sessionID string) (*notebook.Document, error) {
	sess, err := e.resolve(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Document, nil
}

// CreateCell appends a cell to the session's notebook.
func (e *Engine) CreateCell(sessionID string, cellType core.CellType, content string) (core.CreateCellResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.CreateCellResult{}, err
	}
	return doc.CreateCell(cellType, content), nil
}

// InsertCell inserts a cell at the given position.
func (e *Engine) InsertCell(sessionID string, cellType core.CellType, content string, index int) (core.CreateCellResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.CreateCellResult{}, err
	}
	return doc.InsertCell(cellType, content, index), nil
}

// UpdateCell replaces a cell's source in place.
func (e *Engine) UpdateCell(sessionID string, index int, content string) (core.UpdateCellResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.UpdateCellResult{}, err
	}
	return doc.UpdateCell(index, content), nil
}

// DeleteCell removes a cell.
func (e *Engine) DeleteCell(sessionID string, index int) (core.DeleteCellResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.DeleteCellResult{}, err
	}
	return doc.DeleteCell(index), nil
}

// MoveCell repositions a cell.
func (e *Engine) MoveCell(sessionID string, from, to int) (core.MoveCellResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.MoveCellResult{}, err
	}
	return doc.MoveCell(from, to), nil
}

// ClearHistory removes all cells and resets the execution context.
func (e *Engine) ClearHistory(sessionID string) (core.ClearHistoryResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.ClearHistoryResult{}, err
	}
	return doc.ClearHistory(), nil
}

// ExecuteCell runs one code cell against the session's execution context.
// When ExecutionTimeout is configured the run is bounded by it.
func (e *Engine) ExecuteCell(ctx context.Context, sessionID string, index int) (core.ExecuteCellResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.ExecuteCellResult{}, err
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return doc.ExecuteCell(ctx, index), nil
}

// ExecuteAll runs every code cell top to bottom, continuing past failures.
// A configured ExecutionTimeout bounds the whole run, not each cell.
func (e *Engine) ExecuteAll(ctx context.Context, sessionID string) (core.ExecuteAllResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.ExecuteAllResult{}, err
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return doc.ExecuteAll(ctx), nil
}

// RestartKernel resets the session's execution context and clears execution
// counts and outputs while preserving cell sources.
func (e *Engine) RestartKernel(sessionID string) (core.RestartKernelResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.RestartKernelResult{}, err
	}
	return doc.RestartKernel(), nil
}

// HistoryInfo summarizes the session's notebook.
func (e *Engine) HistoryInfo(sessionID string) (core.HistoryInfo, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.HistoryInfo{}, err
	}
	return doc.HistoryInfo(), nil
}

// CellContent returns a read-only view of one cell.
func (e *Engine) CellContent(sessionID string, index int) (core.CellContentResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.CellContentResult{}, err
	}
	return doc.CellContent(index), nil
}

// ExecutionContext returns the string-rendered user variables of the
// session's execution context.
func (e *Engine) ExecutionContext(sessionID string) (core.ExecutionContextResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.ExecutionContextResult{}, err
	}
	return doc.UserVariables(), nil
}

// SaveNotebook serializes the session's notebook to the configured store.
func (e *Engine) SaveNotebook(sessionID, name string) (core.SaveResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.SaveResult{}, err
	}
	return e.manager.Save(doc, name), nil
}

// LoadNotebook replaces the session's notebook with a stored one. The
// session's execution context is reset; re-run the cells to rebuild state.
func (e *Engine) LoadNotebook(sessionID, name string) (core.LoadResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.LoadResult{}, err
	}
	return e.manager.Load(doc, name), nil
}

// ExportNotebook renders the session's notebook in the requested format.
func (e *Engine) ExportNotebook(sessionID, name string, format persist.ExportFormat) (core.ExportResult, error) {
	doc, err := e.Document(sessionID)
	if err != nil {
		return core.ExportResult{}, err
	}
	return e.manager.Export(doc, name, format), nil
}

// ListNotebooks returns the stored notebook files.
func (e *Engine) ListNotebooks() core.ListNotebooksResult {
	return e.manager.List()
}

// DeleteNotebook removes a stored notebook file.
func (e *Engine) DeleteNotebook(name string) core.DeleteNotebookResult {
	return e.manager.Delete(name)
}

// Sessions returns the ids of the live sessions.
func (e *Engine) Sessions() ([]string, error) {
	return e.sessions.List()
}

// CloseSession discards a live session and its execution context. The
// session's notebook is lost unless it was saved first.
func (e *Engine) CloseSession(sessionID string) error {
	return e.sessions.Delete(sessionID)
}

func (e *Engine) resolve(sessionID string) (*session.Session, error) {
	sess, err := e.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("resolving session %q: %w", sessionID, err)
	}
	sess.Touch()
	return sess, nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}
