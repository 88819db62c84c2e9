package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers branch on these with errors.Is;
// concrete errors wrap them with context.
var (
	// ErrNotFound is returned when a referenced card, deck or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for caller contract violations such as a
	// review quality outside [0,5] or a malformed timezone.
	// It is never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable marks a transient failure of the durable store.
	// Read paths may retry with backoff; write paths must not silently retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// InvalidArgument wraps ErrInvalidArgument with a field-level description.
func InvalidArgument(field, message string) error {
	return NewValidationError(field, message, ErrInvalidArgument)
}
