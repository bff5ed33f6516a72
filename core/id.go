package core

import "github.com/google/uuid"

// NewID returns a new random unique identifier (UUID v4 string).
func NewID() string { return uuid.NewString() }
