package session

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/nbkernel/notebook"
)

// Options configures an InMemoryStore.
type Options struct {
	// NewDocument builds the notebook document backing a freshly created
	// session. Defaults to notebook.New with its own default executor.
	NewDocument func() *notebook.Document
}

// InMemoryStore is a volatile Store implementation keeping live sessions in
// a process local map. It is safe for concurrent access. Sessions are
// returned live, not cloned: each one carries a running interpreter.
type InMemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	newDocument func() *notebook.Document
}

// Interface compliance (compile-time assertion)
var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{NewDocument: func() *notebook.Document { return notebook.New() }}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{sessions: make(map[string]*Session), newDocument: opts.NewDocument}
}

// Get returns an existing session or creates a new one lazily.
func (s *InMemoryStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return s.createLocked(id), nil
}

// Create forces the creation of a session with the given id. Creating an id
// that already exists is an error; use Get for lazy semantics.
func (s *InMemoryStore) Create(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return nil, fmt.Errorf("session %q already exists", id)
	}
	return s.createLocked(id), nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns the live session ids sorted alphabetically.
func (s *InMemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// createLocked allocates and stores a new session; caller must already hold
// the write lock.
func (s *InMemoryStore) createLocked(id string) *Session {
	sess := New(id, s.newDocument())
	s.sessions[id] = sess
	return sess
}
