package service

import "fmt"

// ServiceError wraps a failure of a service operation with the context needed
// for logging. The API layer never shows it to clients; it maps the wrapped
// domain sentinel to a status code instead.
//
// Error handling principles:
// 1. Store errors are wrapped, never replaced, so errors.Is still finds the
// domain sentinels (domain.ErrNotFound, domain.ErrInvalidArgument,
// domain.ErrStoreUnavailable)
// 2. Callers use errors.Is/errors.As to check for specific error conditions
// 3. Writes are never retried inside a service
type ServiceError struct {
	// Service is the service that failed (e.g., "card_review", "streak")
	Service string
	// Operation is the operation that failed (e.g., "review_card")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
