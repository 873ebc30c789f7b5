// Package apperrors defines the domain error taxonomy shared by services
// and handlers. Services return these, handlers map them to HTTP statuses
// with errors.Is / errors.As.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad or missing input, rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrAuthRequired marks an action attempted without an authenticated identity.
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidTransition marks an illegal order status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
)

// Validation wraps ErrValidation with a reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// InvalidTransition wraps ErrInvalidTransition with the offending pair.
func InvalidTransition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// StoreError is a persistence or network failure from the backing store.
// The opaque cause is preserved for diagnostics and never swallowed.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error { return e.Cause }

// Store wraps a backing-store failure with the operation name.
func Store(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &StoreError{Op: op, Cause: cause}
}

// IsStore reports whether err is (or wraps) a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
