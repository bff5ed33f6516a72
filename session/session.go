package session

import (
	"sync"
	"time"

	"github.com/hupe1980/nbkernel/notebook"
)

// Session binds a stable identifier to a notebook document and its execution
// context for the lifetime of the process. Metadata and timestamps are safe
// for concurrent access; document-level consistency is the document's own
// concern.
type Session struct {
	ID       string
	Document *notebook.Document
	Created  time.Time
	Updated  time.Time
	Metadata map[string]string
	mu       sync.RWMutex
}

// New creates a session wrapping the given document.
func New(id string, doc *notebook.Document) *Session {
	now := time.Now()
	return &Session{ID: id, Document: doc, Created: now, Updated: now, Metadata: map[string]string{}}
}

// Touch updates the last-activity timestamp.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updated = time.Now()
}

// LastActive returns the last-activity timestamp.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Updated
}

// SetMeta sets a metadata key/value pair updating the Updated timestamp.
func (s *Session) SetMeta(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Metadata[key] = value
	s.Updated = time.Now()
}

// Meta returns the value and existence flag for a metadata key.
func (s *Session) Meta(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.Metadata[key]
	return v, ok
}

// Store manages the set of live sessions. Get creates sessions lazily so a
// caller never has to distinguish first from repeated use of an identifier.
type Store interface {
	Get(id string) (*Session, error)
	Create(id string) (*Session, error)
	Delete(id string) error
	List() ([]string, error)
}
