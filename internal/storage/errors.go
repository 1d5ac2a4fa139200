package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable marks failures of the backing store itself
	// (connectivity, I/O). Callers may retry.
	ErrUnavailable = errors.New("store unavailable")
)

// NotFound wraps ErrNotFound with the collection and ID.
func NotFound(collection Collection, id string) error {
	return fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
}

// UnavailableError describes a failed store operation.
// errors.Is(err, ErrUnavailable) holds for every UnavailableError.
type UnavailableError struct {
	Op  string
	Err error
}

// Unavailable wraps err as an UnavailableError for op.
func Unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }
