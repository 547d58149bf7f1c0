package idgen

import "github.com/google/uuid"

// NewFunc returns a new identifier, override in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Short returns the first segment of a new identifier, used as a readable suffix.
func Short() string {
	id := New()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
