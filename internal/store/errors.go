package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrCardNotFound, ErrDictionaryNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a language with the same name).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrDeleteFailed is returned when a delete operation fails, for example
	// because the entity does not exist or is referenced by other entities.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrLanguageNotFound indicates that the requested language does not exist in the store.
	ErrLanguageNotFound = fmt.Errorf("%w: language", ErrNotFound)

	// ErrDictionaryNotFound indicates that the requested dictionary does not exist in the store.
	ErrDictionaryNotFound = fmt.Errorf("%w: dictionary", ErrNotFound)

	// ErrCardNotFound indicates that the requested card does not exist in the store.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrLanguageExists indicates that a language with the given name already exists.
	ErrLanguageExists = fmt.Errorf("%w: language name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// Entity-specific errors wrap ErrNotFound, so a single errors.Is suffices.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records the entity and operation a storage failure came from.
// It unwraps to both the failure category (ErrUpdateFailed, ErrDeleteFailed,
// ...) and the underlying driver error.
type StoreError struct {
	Entity    string // "card", "dictionary" or "language"
	Operation string // "create", "update", "delete", "move", "rate"
	Kind      error  // failure category, may be nil
	Err       error
}

func (e *StoreError) Error() string {
	switch {
	case e.Kind != nil && e.Err != nil:
		return fmt.Sprintf("%s %s: %v: %v", e.Entity, e.Operation, e.Kind, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("%s %s: %v", e.Entity, e.Operation, e.Kind)
	default:
		return fmt.Sprintf("%s %s: %v", e.Entity, e.Operation, e.Err)
	}
}

// Unwrap exposes Kind and Err to errors.Is and errors.As.
func (e *StoreError) Unwrap() []error {
	errs := make([]error, 0, 2)
	for _, err := range []error{e.Kind, e.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// NewStoreError wraps err with its entity, operation and failure category.
func NewStoreError(entity, operation string, kind, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Kind: kind, Err: err}
}
