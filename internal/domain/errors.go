// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is zero or negative.
	ErrInvalidID = errors.New("invalid ID")

	// ErrWordEmpty is returned when a card word is empty after trimming.
	ErrWordEmpty = errors.New("word cannot be empty")

	// ErrTranslationEmpty is returned when a card translation is empty after trimming.
	ErrTranslationEmpty = errors.New("translation cannot be empty")

	// ErrNameEmpty is returned when a language or dictionary name is empty.
	ErrNameEmpty = errors.New("name cannot be empty")

	// ErrInvalidReviewOutcome is returned when a review outcome is not valid.
	ErrInvalidReviewOutcome = errors.New("invalid review outcome")

	// ErrInvalidDedupMode is returned for an unknown import dedup mode.
	ErrInvalidDedupMode = errors.New("invalid dedup mode")
)

// ValidationError carries the field that failed validation alongside the
// sentinel describing the failure. It matches ErrValidation via errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return "validation failed on " + e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match so callers can test the category.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
