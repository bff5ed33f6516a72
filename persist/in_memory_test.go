package persist_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/hupe1980/nbkernel/persist"
)

func TestInMemoryStore_CopiesOnSaveAndGet(t *testing.T) {
	store := persist.NewInMemoryStore()

	input := []byte("original")
	if _, err := store.Save("nb.ipynb", input); err != nil {
		t.Fatal(err)
	}
	input[0] = 'X'

	data, err := store.Get("nb.ipynb")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Fatalf("stored bytes aliased the caller's slice: %q", data)
	}

	data[0] = 'Y'
	again, _ := store.Get("nb.ipynb")
	if string(again) != "original" {
		t.Fatalf("returned bytes aliased the internal buffer: %q", again)
	}
}

func TestInMemoryStore_SaveOverwrites(t *testing.T) {
	store := persist.NewInMemoryStore()
	store.Save("nb.ipynb", []byte("v1"))
	store.Save("nb.ipynb", []byte("v2"))

	data, err := store.Get("nb.ipynb")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v2" {
		t.Fatalf("got %q", data)
	}
}

func TestInMemoryStore_MissingEntries(t *testing.T) {
	store := persist.NewInMemoryStore()
	if _, err := store.Get("nope"); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete("nope"); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_ListSorted(t *testing.T) {
	store := persist.NewInMemoryStore()
	store.Save("c.ipynb", nil)
	store.Save("a.ipynb", nil)
	store.Save("b.md", nil)

	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.ipynb", "b.md", "c.ipynb"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	store := persist.NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Save("shared.ipynb", []byte("data"))
			store.Get("shared.ipynb")
			store.List()
		}()
	}
	wg.Wait()

	if data, err := store.Get("shared.ipynb"); err != nil || string(data) != "data" {
		t.Fatalf("got %q, %v", data, err)
	}
}
