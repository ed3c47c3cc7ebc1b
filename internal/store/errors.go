// ABOUTME: Error taxonomy for store operations
// ABOUTME: Sentinel and typed errors that callers map to user-facing responses

package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ConflictError is returned when a delete is blocked by existing references.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError is returned for malformed input, such as an import payload
// missing its core collections or an order referencing a missing client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// notFoundf wraps ErrNotFound with a description of what was looked up.
func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
