package core

// NotebookStore persists serialized notebook files by name. Implementations
// should be safe for concurrent use. Short method names (Save/Get/List/
// Delete) mirror the store interfaces of related projects for consistency.
//
// Save returns the canonical location of the stored file (a filesystem path
// for disk-backed stores, the name itself for in-memory ones). Get and
// Delete return persist.ErrNotFound-style sentinel errors when the name is
// unknown; callers classify those as IOFailure.
type NotebookStore interface {
	Save(name string, data []byte) (string, error)
	Get(name string) ([]byte, error)
	List() ([]string, error)
	Delete(name string) error
}
