package persist_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/nbkernel/persist"
)

func TestFSStore_SaveGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := persist.NewFSStore(filepath.Join(dir, "notebooks"))

	// The directory is created lazily on first save.
	path, err := store.Save("a.ipynb", []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "a.ipynb" {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := store.Get("a.ipynb")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("got %q", data)
	}
}

func TestFSStore_NamesAreFlattened(t *testing.T) {
	dir := t.TempDir()
	store := persist.NewFSStore(dir)

	path, err := store.Save("../../escape.ipynb", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "escape.ipynb") {
		t.Fatalf("traversal not flattened: %q", path)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.ipynb")); err != nil {
		t.Fatal("file not written inside the store directory")
	}
}

func TestFSStore_GetMissing(t *testing.T) {
	store := persist.NewFSStore(t.TempDir())
	if _, err := store.Get("nope.ipynb"); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStore_ListMissingDirIsEmpty(t *testing.T) {
	store := persist.NewFSStore(filepath.Join(t.TempDir(), "never-created"))
	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}
}

func TestFSStore_ListSortedSkipsDirs(t *testing.T) {
	dir := t.TempDir()
	store := persist.NewFSStore(dir)
	store.Save("b.ipynb", []byte("b"))
	store.Save("a.ipynb", []byte("a"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.ipynb", "b.ipynb"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestFSStore_Delete(t *testing.T) {
	store := persist.NewFSStore(t.TempDir())
	store.Save("gone.ipynb", []byte("x"))

	if err := store.Delete("gone.ipynb"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("gone.ipynb"); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
