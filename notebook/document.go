package notebook

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/kernel"
	"github.com/hupe1980/nbkernel/logging"
)

// Options configures a Document.
type Options struct {
	// Executor runs code cells. Defaults to a fresh kernel.Interpreter.
	Executor core.Executor
	// Logger receives execution and mutation events. Defaults to NoOp.
	Logger logging.Logger
}

// Document owns the ordered cell history, the execution context and the
// monotonically increasing execution counter of one notebook session. All
// methods are safe for concurrent use; a single internal mutex serializes
// every operation.
type Document struct {
	mu        sync.Mutex
	cells     []core.Cell
	exec      core.Executor
	nextCount int // next global execution count to assign, starts at 1
	logger    logging.Logger
}

// New creates an empty Document with the counter at 1.
func New(optFns ...func(o *Options)) *Document {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Executor == nil {
		opts.Executor = kernel.New()
	}
	return &Document{exec: opts.Executor, nextCount: 1, logger: opts.Logger}
}

// CreateCell appends a cell of the given type to the end of the history.
func (d *Document) CreateCell(cellType core.CellType, content string) core.CreateCellResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	cell, err := core.NewCell(cellType, content)
	if err != nil {
		return core.CreateCellResult{Created: false, Index: -1, Message: err.Error(), Code: core.CodeOf(err)}
	}
	d.cells = append(d.cells, cell)
	index := len(d.cells) - 1
	d.logger.Debug("cell created", "cell_type", cellType, "index", index)
	return core.CreateCellResult{
		Created: true,
		Index:   index,
		Message: fmt.Sprintf("%s cell created successfully at index %d", capitalize(string(cellType)), index),
	}
}

// InsertCell inserts a cell at index, shifting existing cells to the right.
// Index may equal the history length (append position).
func (d *Document) InsertCell(cellType core.CellType, content string, index int) core.CreateCellResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index > len(d.cells) {
		return core.CreateCellResult{
			Created: false,
			Index:   -1,
			Message: fmt.Sprintf("Invalid index. Must be between 0 and %d (inclusive)", len(d.cells)),
			Code:    core.ErrIndexOutOfRange,
		}
	}
	cell, err := core.NewCell(cellType, content)
	if err != nil {
		return core.CreateCellResult{Created: false, Index: -1, Message: err.Error(), Code: core.CodeOf(err)}
	}
	d.cells = append(d.cells, nil)
	copy(d.cells[index+1:], d.cells[index:])
	d.cells[index] = cell
	d.logger.Debug("cell inserted", "cell_type", cellType, "index", index)
	return core.CreateCellResult{
		Created: true,
		Index:   index,
		Message: fmt.Sprintf("%s cell inserted successfully at index %d", capitalize(string(cellType)), index),
	}
}

// UpdateCell replaces the source of the cell at index; the type is unchanged.
func (d *Document) UpdateCell(index int, content string) core.UpdateCellResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.cells) {
		return core.UpdateCellResult{Updated: false, Message: d.invalidIndexMessage(), Code: core.ErrIndexOutOfRange}
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return core.UpdateCellResult{Updated: false, Message: "Content cannot be empty", Code: core.ErrEmptyContent}
	}
	cell := d.cells[index]
	cell.SetSource(trimmed)
	return core.UpdateCellResult{
		Updated:  true,
		Message:  fmt.Sprintf("Cell at index %d updated successfully", index),
		CellType: cell.Type(),
	}
}

// DeleteCell removes the cell at index, shifting remaining cells to the left.
func (d *Document) DeleteCell(index int) core.DeleteCellResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.cells) {
		return core.DeleteCellResult{
			Deleted:  false,
			Message:  d.invalidIndexMessage(),
			NewTotal: len(d.cells),
			Code:     core.ErrIndexOutOfRange,
		}
	}
	removed := d.cells[index]
	d.cells = append(d.cells[:index], d.cells[index+1:]...)
	d.logger.Debug("cell deleted", "cell_type", removed.Type(), "index", index)
	return core.DeleteCellResult{
		Deleted:         true,
		Message:         fmt.Sprintf("%s cell at index %d deleted successfully", capitalize(string(removed.Type())), index),
		NewTotal:        len(d.cells),
		DeletedCellType: removed.Type(),
	}
}

// MoveCell repositions a cell; moving a cell onto its own index is a no-op.
func (d *Document) MoveCell(from, to int) core.MoveCellResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if from < 0 || from >= len(d.cells) {
		return core.MoveCellResult{Moved: false, Message: "Invalid from_index. " + d.rangeDescription(), Code: core.ErrIndexOutOfRange}
	}
	if to < 0 || to >= len(d.cells) {
		return core.MoveCellResult{Moved: false, Message: "Invalid to_index. " + d.rangeDescription(), Code: core.ErrIndexOutOfRange}
	}
	if from == to {
		return core.MoveCellResult{Moved: true, Message: "Cell is already at the target position", CellType: d.cells[from].Type()}
	}
	cell := d.cells[from]
	d.cells = append(d.cells[:from], d.cells[from+1:]...)
	d.cells = append(d.cells, nil)
	copy(d.cells[to+1:], d.cells[to:])
	d.cells[to] = cell
	return core.MoveCellResult{
		Moved:    true,
		Message:  fmt.Sprintf("%s cell moved from index %d to %d", capitalize(string(cell.Type())), from, to),
		CellType: cell.Type(),
	}
}

// ClearHistory removes every cell, resets the execution context and resets
// the counter to 1.
func (d *Document) ClearHistory() core.ClearHistoryResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous := len(d.cells)
	d.cells = nil
	d.nextCount = 1
	if err := d.exec.Reset(); err != nil {
		d.logger.Warn("execution context reset failed during clear", "error", err)
	}
	d.logger.Info("history cleared", "previous_total", previous)
	return core.ClearHistoryResult{
		Cleared:       true,
		Message:       fmt.Sprintf("History cleared successfully. Removed %d cells", previous),
		PreviousTotal: previous,
	}
}

// ExecuteCell runs the code cell at index against the shared execution
// context and assigns the next global execution count. A failed run still
// consumes a counter value; the failure is returned as data, never raised.
func (d *Document) ExecuteCell(ctx context.Context, index int) core.ExecuteCellResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.cells) {
		msg := d.invalidIndexMessage()
		return core.ExecuteCellResult{Executed: false, Error: msg, ExecutionCount: -1, Message: msg, Code: core.ErrIndexOutOfRange}
	}
	cell, ok := d.cells[index].(*core.CodeCell)
	if !ok {
		cellType := d.cells[index].Type()
		return core.ExecuteCellResult{
			Executed:       false,
			Error:          fmt.Sprintf("Cell at index %d is not a code cell (it's %s)", index, cellType),
			ExecutionCount: -1,
			Message:        fmt.Sprintf("Cannot execute %s cell", cellType),
			Code:           core.ErrWrongCellType,
		}
	}

	run := d.runCodeCellLocked(ctx, index, cell)
	message := fmt.Sprintf("Code cell at index %d executed successfully", index)
	var code core.ErrorCode
	if run.Error != "" {
		message = "Code cell executed with errors"
		code = core.ErrExecutionFailure
	}
	return core.ExecuteCellResult{
		Executed:       true,
		Stdout:         run.Stdout,
		Result:         run.Result,
		Error:          run.Error,
		ExecutionCount: run.ExecutionCount,
		Message:        message,
		Code:           code,
	}
}

// ExecuteAll runs every code cell in document order, continuing past
// per-cell errors. The aggregate Executed flag is the AND of all outcomes.
func (d *Document) ExecuteAll(ctx context.Context) core.ExecuteAllResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	var results []core.CellExecution
	for index, cell := range d.cells {
		code, ok := cell.(*core.CodeCell)
		if !ok {
			continue
		}
		results = append(results, d.runCodeCellLocked(ctx, index, code))
	}

	success := true
	for _, r := range results {
		if r.Error != "" {
			success = false
			break
		}
	}
	message := fmt.Sprintf("Executed %d code cells out of %d total cells", len(results), len(d.cells))
	if !success {
		message += " (some cells had errors)"
	}
	return core.ExecuteAllResult{
		Executed:      success,
		TotalCells:    len(d.cells),
		ExecutedCells: len(results),
		Results:       results,
		Message:       message,
	}
}

// runCodeCellLocked executes one code cell, assigns the next execution count
// and replaces the cell's outputs in emission order (stream, result, error).
// Caller must hold the mutex.
func (d *Document) runCodeCellLocked(ctx context.Context, index int, cell *core.CodeCell) core.CellExecution {
	start := time.Now()
	res := d.exec.Execute(ctx, cell.Src)

	count := d.nextCount
	d.nextCount++
	cell.ExecutionCount = &count

	var outputs []core.Output
	if res.Stdout != "" {
		outputs = append(outputs, core.StreamOutput{Name: "stdout", Text: res.Stdout})
	}
	if res.Result != nil {
		outputs = append(outputs, core.ResultOutput{ExecutionCount: count, Text: core.RenderValue(res.Result)})
	}
	if res.Err != "" {
		outputs = append(outputs, core.ErrorOutput{
			Name:      "ExecutionError",
			Message:   "Cell execution failed",
			Traceback: strings.Split(res.Err, "\n"),
		})
	}
	cell.Outputs = outputs

	d.logger.Debug("code cell executed", "index", index, "execution_count", count, "duration", time.Since(start), "failed", res.Failed())
	return core.CellExecution{
		Index:          index,
		Executed:       true,
		Stdout:         res.Stdout,
		Result:         res.Result,
		Error:          res.Err,
		ExecutionCount: count,
	}
}

// RestartKernel resets the execution context, clears every code cell's
// outputs and execution count, and resets the counter to 1. Cell content and
// ordering are untouched. The operation is idempotent.
func (d *Document) RestartKernel() core.RestartKernelResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.exec.Reset(); err != nil {
		return core.RestartKernelResult{Restarted: false, Message: fmt.Sprintf("Failed to restart kernel: %s", err)}
	}
	cleared := 0
	for _, cell := range d.cells {
		if code, ok := cell.(*core.CodeCell); ok {
			code.ExecutionCount = nil
			code.Outputs = nil
			cleared++
		}
	}
	d.nextCount = 1
	d.logger.Info("kernel restarted", "cleared_cells", cleared)
	return core.RestartKernelResult{
		Restarted: true,
		Message:   "Kernel restarted successfully. All variables cleared and execution counts reset.",
	}
}

// HistoryInfo returns a read-only summary of the document.
func (d *Document) HistoryInfo() core.HistoryInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := core.HistoryInfo{
		TotalCells:           len(d.cells),
		CellTypes:            make([]core.CellType, 0, len(d.cells)),
		GlobalExecutionCount: d.nextCount,
	}
	for _, cell := range d.cells {
		info.CellTypes = append(info.CellTypes, cell.Type())
		switch c := cell.(type) {
		case *core.CodeCell:
			info.CodeCells++
			if c.ExecutionCount != nil {
				info.ExecutedCells++
			}
		case *core.MarkdownCell:
			info.MarkdownCells++
		}
	}
	return info
}

// CellContent returns a read-only view of the cell at index, including
// execution bookkeeping for code cells.
func (d *Document) CellContent(index int) core.CellContentResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.cells) {
		return core.CellContentResult{Found: false, Content: d.invalidIndexMessage(), Code: core.ErrIndexOutOfRange}
	}
	cell := d.cells[index]
	result := core.CellContentResult{Found: true, Content: cell.Source(), CellType: cell.Type()}
	if code, ok := cell.(*core.CodeCell); ok {
		if code.ExecutionCount != nil {
			count := *code.ExecutionCount
			result.ExecutionCount = &count
		}
		result.Outputs = append([]core.Output(nil), code.Outputs...)
	}
	return result
}

// UserVariables returns a string-rendered snapshot of the execution context.
// The snapshot never fails; unrenderable values carry a type placeholder.
func (d *Document) UserVariables() core.ExecutionContextResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	vars := d.exec.UserVariables()
	return core.ExecutionContextResult{
		Success:       true,
		Variables:     vars,
		VariableCount: len(vars),
		Message:       fmt.Sprintf("Retrieved %d user-defined variables", len(vars)),
	}
}

// Snapshot is the serialization view of a document: deep-copied cells, the
// current global execution counter and the rendered user variables.
type Snapshot struct {
	Cells                []core.Cell
	GlobalExecutionCount int
	UserVariables        map[string]string
}

// Snapshot captures the current document state for serialization.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	cells := make([]core.Cell, len(d.cells))
	for i, cell := range d.cells {
		cells[i] = cell.Clone()
	}
	return Snapshot{
		Cells:                cells,
		GlobalExecutionCount: d.nextCount,
		UserVariables:        d.exec.UserVariables(),
	}
}

// Restore atomically replaces the history and the execution counter with
// loaded state and resets the execution context. Counter values below 1 are
// normalized to 1.
func (d *Document) Restore(cells []core.Cell, globalExecutionCount int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.exec.Reset(); err != nil {
		return err
	}
	d.cells = cells
	if globalExecutionCount < 1 {
		globalExecutionCount = 1
	}
	d.nextCount = globalExecutionCount
	d.logger.Info("document restored", "cells", len(cells), "global_execution_count", globalExecutionCount)
	return nil
}

// invalidIndexMessage renders the out-of-range failure with the then-current
// valid range. Caller must hold the mutex.
func (d *Document) invalidIndexMessage() string {
	return "Invalid index. " + d.rangeDescription()
}

func (d *Document) rangeDescription() string {
	return fmt.Sprintf("History contains %d cells (0-%d)", len(d.cells), len(d.cells)-1)
}

// capitalize upper-cases the first rune for user-facing messages.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
