package store

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// It wraps domain.ErrNotFound so callers above the store can branch on
	// the domain taxonomy alone.
	ErrNotFound = fmt.Errorf("entity %w", domain.ErrNotFound)

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnavailable is returned when the database cannot be reached or
	// refuses connections. It wraps domain.ErrStoreUnavailable.
	ErrUnavailable = fmt.Errorf("database %w", domain.ErrStoreUnavailable)

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	ErrCardNotFound       = fmt.Errorf("%w: card", ErrNotFound)
	ErrDeckNotFound       = fmt.Errorf("%w: deck", ErrNotFound)
	ErrScheduleNotFound   = fmt.Errorf("%w: card schedule", ErrNotFound)
	ErrMasteryNotFound    = fmt.Errorf("%w: concept mastery", ErrNotFound)
	ErrPatternNotFound    = fmt.Errorf("%w: learning pattern", ErrNotFound)
	ErrStreakNotFound     = fmt.Errorf("%w: study streak", ErrNotFound)
	ErrCacheEntryNotFound = fmt.Errorf("%w: stats cache entry", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsUnavailableError reports whether err marks a transient database failure.
func IsUnavailableError(err error) bool {
	return errors.Is(err, domain.ErrStoreUnavailable)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "card", "study_streak")
	Operation string // The operation that failed (e.g., "get", "upsert")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
