// Package service provides application-level services for managing languages,
// dictionaries and cards.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for specific conditions; store sentinels such
// as store.ErrCardNotFound pass through unchanged.
var (
	// ErrSameDictionary is returned when cards would be moved into the
	// dictionary being deleted.
	ErrSameDictionary = errors.New("source and target dictionary are the same")

	// ErrInvalidDeleteMode is returned for a zero DeleteMode.
	ErrInvalidDeleteMode = errors.New("dictionary delete mode must be explicit")
)

// ServiceError is a custom error type for service failures that are not one
// of the sentinel conditions.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
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

// NewCardServiceError creates a ServiceError for the card service.
func NewCardServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "card", Operation: operation, Message: message, Err: err}
}

// NewLibraryServiceError creates a ServiceError for the library service.
func NewLibraryServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "library", Operation: operation, Message: message, Err: err}
}
