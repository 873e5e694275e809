package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound means no record matches the requested id.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateID means an insert collided with an existing id.
	ErrDuplicateID = errors.New("product id already exists")
)

// StorageError wraps an engine-level failure so callers can tell an
// infrastructure fault apart from a missing or conflicting record.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError tags err with the failing operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
