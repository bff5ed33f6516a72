package persist

import (
	"sort"
	"sync"

	"github.com/hupe1980/nbkernel/core"
)

// InMemoryStore is a trivial in-process core.NotebookStore implementation
// useful for tests, examples and single-process prototypes. It keeps all
// files in a map guarded by an RWMutex. Data is copied on save / retrieval
// to avoid accidental external mutation of internal buffers.
//
// This implementation is intentionally minimal; it does not enforce
// retention limits, size quotas, or eviction. For anything that must survive
// a process restart, use FSStore or a durable backend.
type InMemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// Interface compliance (compile-time assertion)
var _ core.NotebookStore = (*InMemoryStore)(nil)

// NewInMemoryStore returns an empty in-memory notebook store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{files: make(map[string][]byte)}
}

// Save stores (or overwrites) the bytes for the given name. The input slice
// is copied before storage; the name doubles as the returned location.
func (s *InMemoryStore) Save(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[name] = cp
	return name, nil
}

// Get returns a copy of the stored bytes or ErrNotFound.
func (s *InMemoryStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the stored names sorted alphabetically. The slice is a
// snapshot and safe for caller mutation.
func (s *InMemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the file if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return ErrNotFound
	}
	delete(s.files, name)
	return nil
}
