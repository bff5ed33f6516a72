package persist

import "fmt"

var (
	// ErrNotFound is returned when a notebook with the given name does not
	// exist in the underlying store.
	ErrNotFound = fmt.Errorf("notebook not found")
)
