package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("failed: %w", ErrNotFound), true},
		{"ErrCardNotFound", ErrCardNotFound, true},
		{"ErrDictionaryNotFound", ErrDictionaryNotFound, true},
		{"wrapped ErrLanguageNotFound", fmt.Errorf("lookup: %w", ErrLanguageNotFound), true},
		{"duplicate is not not-found", ErrLanguageExists, false},
		{"store error wrapping card not found", NewStoreError("card", "update", ErrUpdateFailed, ErrCardNotFound), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDuplicateError(ErrLanguageExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrCardNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	driverErr := errors.New("disk I/O error")

	tests := []struct {
		name    string
		err     *StoreError
		wantMsg string
		is      []error
		isNot   []error
	}{
		{
			name:    "kind and cause",
			err:     NewStoreError("card", "update", ErrUpdateFailed, driverErr),
			wantMsg: "card update: update failed: disk I/O error",
			is:      []error{ErrUpdateFailed, driverErr},
			isNot:   []error{ErrDeleteFailed, ErrNotFound},
		},
		{
			name:    "cause only",
			err:     NewStoreError("language", "create", nil, ErrInvalidEntity),
			wantMsg: "language create: invalid entity",
			is:      []error{ErrInvalidEntity},
			isNot:   []error{ErrUpdateFailed},
		},
		{
			name:    "kind only",
			err:     NewStoreError("dictionary", "delete", ErrDeleteFailed, nil),
			wantMsg: "dictionary delete: delete failed",
			is:      []error{ErrDeleteFailed},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantMsg, tc.err.Error())
			for _, target := range tc.is {
				assert.ErrorIs(t, tc.err, target)
			}
			for _, target := range tc.isNot {
				assert.NotErrorIs(t, tc.err, target)
			}
		})
	}

	var se *StoreError
	wrapped := fmt.Errorf("service: %w", NewStoreError("card", "delete", ErrDeleteFailed, driverErr))
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, "card", se.Entity)
	assert.Equal(t, "delete", se.Operation)
}
