package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches the requested name.
	ErrNotFound = errors.New("roster: record not found")

	// ErrConcurrentModification is returned by the DynamoDB backend when an
	// optimistic lock fails (version mismatch).
	ErrConcurrentModification = errors.New("roster: record was modified concurrently")
)

// ValidationError is returned when a candidate record violates a field
// invariant. The store's contents are never changed by a rejected
// create or update.
type ValidationError struct {
	// Field is the name of the offending field ("age" or "scores").
	Field string

	// Reason is a human-readable description of the violation.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roster: invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
