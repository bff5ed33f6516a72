package persist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/logging"
	"github.com/hupe1980/nbkernel/notebook"
)

// notebookExt is the on-disk extension of serialized notebooks.
const notebookExt = ".ipynb"

// Options configures a Manager.
type Options struct {
	// Logger receives persistence events. Defaults to NoOp.
	Logger logging.Logger
	// Clock supplies export header timestamps; overridable for tests.
	Clock func() time.Time
}

// Manager is the persistence layer: it snapshots documents into the store,
// restores them, and renders one-way exports. Every operation returns a
// structured result record; serialization is validated before any write so a
// failure can never corrupt a previously saved file.
type Manager struct {
	store  core.NotebookStore
	logger logging.Logger
	clock  func() time.Time
}

// NewManager creates a Manager on top of the given store.
func NewManager(store core.NotebookStore, optFns ...func(o *Options)) *Manager {
	opts := Options{Logger: logging.NoOpLogger{}, Clock: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{store: store, logger: opts.Logger, clock: opts.Clock}
}

// Save snapshots the document and writes it as name.ipynb. Marshalling is
// attempted and validated before the store is touched (write-after-validate).
func (m *Manager) Save(doc *notebook.Document, name string) core.SaveResult {
	start := time.Now()
	data, err := Marshal(doc.Snapshot())
	if err != nil {
		m.logger.Error("notebook serialization failed", "notebook", name, "error", err)
		return core.SaveResult{Saved: false, Message: err.Error(), Code: core.CodeOf(err)}
	}

	filename := ensureExt(name, notebookExt)
	path, err := m.store.Save(filename, data)
	if err != nil {
		m.logger.Error("notebook save failed", "notebook", filename, "error", err)
		return core.SaveResult{
			Saved:   false,
			Message: fmt.Sprintf("Failed to save notebook: %s", err),
			Code:    core.ErrIOFailure,
		}
	}
	m.logger.Info("notebook saved", "notebook", filename, "path", path, "duration", time.Since(start))
	return core.SaveResult{
		Saved:    true,
		Filepath: path,
		Message:  fmt.Sprintf("Notebook saved successfully to %s", path),
	}
}

// Load reads name.ipynb from the store and atomically replaces the
// document's history and execution counter. Unknown cell types in the file
// are skipped, not fatal.
func (m *Manager) Load(doc *notebook.Document, name string) core.LoadResult {
	filename := ensureExt(name, notebookExt)
	data, err := m.store.Get(filename)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.LoadResult{Loaded: false, Message: fmt.Sprintf("File not found: %s", filename), Code: core.ErrIOFailure}
		}
		return core.LoadResult{Loaded: false, Message: fmt.Sprintf("Failed to load notebook: %s", err), Code: core.ErrIOFailure}
	}

	cells, globalCount, err := Unmarshal(data)
	if err != nil {
		return core.LoadResult{Loaded: false, Message: err.Error(), Code: core.CodeOf(err)}
	}
	if err := doc.Restore(cells, globalCount); err != nil {
		return core.LoadResult{Loaded: false, Message: fmt.Sprintf("Failed to load notebook: %s", err), Code: core.ErrIOFailure}
	}
	m.logger.Info("notebook loaded", "notebook", filename, "cells", len(cells))
	return core.LoadResult{
		Loaded:      true,
		CellsLoaded: len(cells),
		Message:     fmt.Sprintf("Notebook loaded successfully. %d cells loaded from %s", len(cells), filename),
	}
}

// Export renders the document in the requested format and stores the result.
// The json format delegates to Save; go (alias py) and md are one-way text
// renderings. An unsupported format is a reported failure, not a panic.
func (m *Manager) Export(doc *notebook.Document, name string, format ExportFormat) core.ExportResult {
	switch format {
	case ExportFormatJSON:
		saved := m.Save(doc, name)
		return core.ExportResult{Exported: saved.Saved, Filepath: saved.Filepath, Message: saved.Message, Code: saved.Code}

	case ExportFormatSource, exportFormatSourceAlias:
		return m.exportText(doc, ensureExt(name, ".go"), func(snap notebook.Snapshot) string {
			return renderSource(snap, m.clock())
		}, "go")

	case ExportFormatMarkdown:
		return m.exportText(doc, ensureExt(name, ".md"), func(snap notebook.Snapshot) string {
			return renderMarkdown(snap, m.clock())
		}, "md")

	default:
		return core.ExportResult{
			Exported: false,
			Message:  fmt.Sprintf("Unsupported format: %s. Supported formats: json, go, md", format),
			Code:     core.ErrSerializationFailure,
		}
	}
}

func (m *Manager) exportText(doc *notebook.Document, filename string, render func(notebook.Snapshot) string, format string) core.ExportResult {
	content := render(doc.Snapshot())
	path, err := m.store.Save(filename, []byte(content))
	if err != nil {
		m.logger.Error("notebook export failed", "notebook", filename, "error", err)
		return core.ExportResult{
			Exported: false,
			Message:  fmt.Sprintf("Failed to export notebook: %s", err),
			Code:     core.ErrIOFailure,
		}
	}
	m.logger.Info("notebook exported", "notebook", filename, "format", format)
	return core.ExportResult{
		Exported: true,
		Filepath: path,
		Message:  fmt.Sprintf("Notebook exported successfully to %s in %s format", path, format),
	}
}

// List returns the stored notebook files (.ipynb only, exports excluded).
func (m *Manager) List() core.ListNotebooksResult {
	names, err := m.store.List()
	if err != nil {
		return core.ListNotebooksResult{Success: false, Notebooks: []string{}, Message: fmt.Sprintf("Failed to list notebooks: %s", err)}
	}
	notebooks := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, notebookExt) {
			notebooks = append(notebooks, name)
		}
	}
	return core.ListNotebooksResult{
		Success:   true,
		Notebooks: notebooks,
		Count:     len(notebooks),
		Message:   fmt.Sprintf("Found %d saved notebooks", len(notebooks)),
	}
}

// Delete removes a stored notebook file.
func (m *Manager) Delete(name string) core.DeleteNotebookResult {
	filename := ensureExt(name, notebookExt)
	if err := m.store.Delete(filename); err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.DeleteNotebookResult{Deleted: false, Message: fmt.Sprintf("Notebook file not found: %s", filename), Code: core.ErrIOFailure}
		}
		return core.DeleteNotebookResult{Deleted: false, Message: fmt.Sprintf("Failed to delete notebook: %s", err), Code: core.ErrIOFailure}
	}
	m.logger.Info("notebook deleted", "notebook", filename)
	return core.DeleteNotebookResult{Deleted: true, Message: fmt.Sprintf("Notebook %s deleted successfully", filename)}
}

// ensureExt appends ext when name does not already end with it.
func ensureExt(name, ext string) string {
	if strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}
