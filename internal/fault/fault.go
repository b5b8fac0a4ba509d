// Package fault defines the error taxonomy shared across the service layers.
// Store and service code return these so transport can map them to status
// codes without string matching.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing profile, alert, or event record.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness-constraint violation. The identity
	// resolver treats it as "another request won the race" and re-fetches.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized signals a missing or unverifiable principal credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition signals a lifecycle call from a state that does
	// not permit it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyResolved signals re-resolution of a resolved alert. Distinct
	// from ErrInvalidTransition so callers can surface the caller bug.
	ErrAlreadyResolved = errors.New("alert already resolved")

	// ErrLocationTimeout signals no position fix within the deadline.
	ErrLocationTimeout = errors.New("location acquisition timed out")

	// ErrLocationPermission signals a user or OS refusal.
	ErrLocationPermission = errors.New("location permission denied")

	// ErrLocationUnavailable signals a sensor error.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps an unrecoverable store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError for op. Returns nil for nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
