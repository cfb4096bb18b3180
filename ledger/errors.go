package ledger

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist within the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)
