package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hupe1980/nbkernel/core"
)

// FSStore is a core.NotebookStore keeping each notebook as one file inside a
// directory. The directory is created lazily on first save. Names are
// flattened with filepath.Base so callers cannot escape the directory.
type FSStore struct {
	dir string
}

// Interface compliance (compile-time assertion)
var _ core.NotebookStore = (*FSStore)(nil)

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Save writes data to dir/name and returns the full path. The write happens
// only after the caller has produced valid serialized bytes; this method
// never partially writes a validated payload (os.WriteFile truncates and
// writes in one call).
func (s *FSStore) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating notebook directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing notebook file: %w", err)
	}
	return path, nil
}

// Get reads dir/name, returning ErrNotFound for missing files.
func (s *FSStore) Get(name string) ([]byte, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading notebook file: %w", err)
	}
	return data, nil
}

// List returns the file names in the directory sorted alphabetically. A
// missing directory is an empty store, not an error.
func (s *FSStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing notebook directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes dir/name, returning ErrNotFound for missing files.
func (s *FSStore) Delete(name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting notebook file: %w", err)
	}
	return nil
}
