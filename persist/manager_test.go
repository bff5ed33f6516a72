package persist_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hupe1980/nbkernel/core"
	"github.com/hupe1980/nbkernel/internal/testutil"
	"github.com/hupe1980/nbkernel/notebook"
	"github.com/hupe1980/nbkernel/persist"
)

var fixedClock = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func newManager() (*persist.Manager, *persist.InMemoryStore) {
	store := persist.NewInMemoryStore()
	m := persist.NewManager(store, func(o *persist.Options) { o.Clock = fixedClock })
	return m, store
}

func executedDoc(t *testing.T) *notebook.Document {
	t.Helper()
	exec := testutil.NewScriptedExecutor(
		core.ExecutionResult{Stdout: "hi\n", Result: 5},
	)
	doc := testutil.NewDocumentBuilder(exec).
		Markdown("# Report").
		Code("x := 2\nx + 3").
		Build()
	if res := doc.ExecuteCell(context.Background(), 1); !res.Executed {
		t.Fatalf("execute: %+v", res)
	}
	return doc
}

func TestManager_SaveAppendsExtension(t *testing.T) {
	m, store := newManager()
	doc := executedDoc(t)

	res := m.Save(doc, "analysis")
	if !res.Saved || res.Filepath != "analysis.ipynb" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, err := store.Get("analysis.ipynb"); err != nil {
		t.Fatalf("file not stored: %v", err)
	}

	// Already-suffixed names stay untouched.
	res = m.Save(doc, "analysis.ipynb")
	if res.Filepath != "analysis.ipynb" {
		t.Fatalf("extension doubled: %+v", res)
	}
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	m, _ := newManager()
	doc := executedDoc(t)
	before := doc.Snapshot()

	if res := m.Save(doc, "rt"); !res.Saved {
		t.Fatalf("save: %+v", res)
	}

	target := notebook.New(func(o *notebook.Options) { o.Executor = testutil.NewScriptedExecutor() })
	res := m.Load(target, "rt")
	if !res.Loaded || res.CellsLoaded != 2 {
		t.Fatalf("load: %+v", res)
	}

	after := target.Snapshot()
	if diff := cmp.Diff(before.Cells, after.Cells); diff != "" {
		t.Fatalf("history mismatch after round trip (-want +got):\n%s", diff)
	}
	if after.GlobalExecutionCount != before.GlobalExecutionCount {
		t.Fatalf("counter mismatch: got %d, want %d", after.GlobalExecutionCount, before.GlobalExecutionCount)
	}
}

func TestManager_LoadResetsExecutionContext(t *testing.T) {
	m, _ := newManager()
	if res := m.Save(executedDoc(t), "rt"); !res.Saved {
		t.Fatal("save failed")
	}

	exec := testutil.NewScriptedExecutor()
	target := notebook.New(func(o *notebook.Options) { o.Executor = exec })
	if res := m.Load(target, "rt"); !res.Loaded {
		t.Fatal("load failed")
	}
	if exec.Resets != 1 {
		t.Fatalf("load must reset the execution context, resets=%d", exec.Resets)
	}
}

func TestManager_LoadMissingFile(t *testing.T) {
	m, _ := newManager()
	doc := notebook.New(func(o *notebook.Options) { o.Executor = testutil.NewScriptedExecutor() })

	res := m.Load(doc, "ghost")
	if res.Loaded || res.Code != core.ErrIOFailure {
		t.Fatalf("expected io_failure, got %+v", res)
	}
	if !strings.Contains(res.Message, "ghost.ipynb") {
		t.Fatalf("message must name the file: %q", res.Message)
	}
}

// A serialization failure must be detected before anything is written, so a
// previously saved file survives intact.
func TestManager_SaveValidatesBeforeWrite(t *testing.T) {
	m, store := newManager()
	good := executedDoc(t)
	if res := m.Save(good, "nb"); !res.Saved {
		t.Fatal("initial save failed")
	}
	original, err := store.Get("nb.ipynb")
	if err != nil {
		t.Fatal(err)
	}

	bad := notebook.New(func(o *notebook.Options) { o.Executor = testutil.NewScriptedExecutor() })
	if err := bad.Restore([]core.Cell{unknownCell{}}, 1); err != nil {
		t.Fatal(err)
	}
	res := m.Save(bad, "nb")
	if res.Saved || res.Code != core.ErrSerializationFailure {
		t.Fatalf("expected serialization_failure, got %+v", res)
	}

	current, err := store.Get("nb.ipynb")
	if err != nil {
		t.Fatal(err)
	}
	if string(current) != string(original) {
		t.Fatal("failed save corrupted the previously stored file")
	}
}

func TestManager_ExportSource(t *testing.T) {
	m, store := newManager()
	res := m.Export(executedDoc(t), "report", persist.ExportFormatSource)
	if !res.Exported || res.Filepath != "report.go" {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, err := store.Get("report.go")
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "// Notebook exported to Go source\n// Generated on 2026-01-02T03:04:05Z") {
		t.Fatalf("missing generated-on header:\n%s", text)
	}
	if !strings.Contains(text, "// Cell 0 - Markdown\n// # Report\n") {
		t.Fatalf("markdown not commented:\n%s", text)
	}
	if !strings.Contains(text, "// Cell 1 - Code\n// Execution count: 1\nx := 2\nx + 3\n") {
		t.Fatalf("code not verbatim:\n%s", text)
	}
}

func TestManager_ExportSource_LegacyAlias(t *testing.T) {
	m, _ := newManager()
	res := m.Export(executedDoc(t), "report", persist.ExportFormat("py"))
	if !res.Exported || res.Filepath != "report.go" {
		t.Fatalf("py alias must map to the source export: %+v", res)
	}
}

func TestManager_ExportMarkdown(t *testing.T) {
	m, store := newManager()
	res := m.Export(executedDoc(t), "report", persist.ExportFormatMarkdown)
	if !res.Exported || res.Filepath != "report.md" {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, err := store.Get("report.md")
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "# Report\n\n") {
		t.Fatalf("markdown cell not rendered as-is:\n%s", text)
	}
	if !strings.Contains(text, "```go\nx := 2\nx + 3\n```\n") {
		t.Fatalf("code cell not fenced:\n%s", text)
	}
	// Stream then result outputs follow as fenced plain-text blocks.
	if !strings.Contains(text, "```\nhi\n\n```\n\n```\n5\n```\n") {
		t.Fatalf("outputs not rendered:\n%s", text)
	}
}

func TestManager_ExportJSONDelegatesToSave(t *testing.T) {
	m, store := newManager()
	res := m.Export(executedDoc(t), "snap", persist.ExportFormatJSON)
	if !res.Exported || res.Filepath != "snap.ipynb" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, err := store.Get("snap.ipynb"); err != nil {
		t.Fatal("json export must produce a loadable notebook file")
	}
}

func TestManager_ExportUnsupportedFormat(t *testing.T) {
	m, store := newManager()
	res := m.Export(executedDoc(t), "nope", persist.ExportFormat("xlsx"))
	if res.Exported {
		t.Fatalf("unsupported format must fail: %+v", res)
	}
	if !strings.Contains(res.Message, "Unsupported format: xlsx") {
		t.Fatalf("message must name the format: %q", res.Message)
	}
	if names, _ := store.List(); len(names) != 0 {
		t.Fatal("failed export must not write")
	}
}

func TestManager_ListFiltersExports(t *testing.T) {
	m, _ := newManager()
	doc := executedDoc(t)
	m.Save(doc, "a")
	m.Save(doc, "b")
	m.Export(doc, "a", persist.ExportFormatMarkdown)

	res := m.List()
	if !res.Success || res.Count != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	for _, name := range res.Notebooks {
		if !strings.HasSuffix(name, ".ipynb") {
			t.Fatalf("exports must not be listed: %v", res.Notebooks)
		}
	}
}

func TestManager_Delete(t *testing.T) {
	m, _ := newManager()
	m.Save(executedDoc(t), "victim")

	res := m.Delete("victim")
	if !res.Deleted {
		t.Fatalf("unexpected result: %+v", res)
	}
	res = m.Delete("victim")
	if res.Deleted || res.Code != core.ErrIOFailure {
		t.Fatalf("expected not-found failure, got %+v", res)
	}
}

// unknownCell is a cell type the codec cannot serialize.
type unknownCell struct{}

func (unknownCell) Type() core.CellType { return core.CellType("alien") }

func (unknownCell) Source() string { return "" }

func (unknownCell) SetSource(string) {}

func (unknownCell) Meta() map[string]any { return nil }

func (unknownCell) Clone() core.Cell { return unknownCell{} }
