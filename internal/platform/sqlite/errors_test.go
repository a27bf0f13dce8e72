package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, store.ErrDuplicate},
		{"foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, store.ErrInvalidEntity},
		{"not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, store.ErrInvalidEntity},
		{"unmapped", plain, plain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestIsStaleHandle(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStaleHandle(sql.ErrConnDone))
	assert.True(t, IsStaleHandle(fmt.Errorf("exec: %w", driver.ErrBadConn)))
	assert.True(t, IsStaleHandle(errors.New("sql: database is closed")))
	assert.True(t, IsStaleHandle(sqlite3.Error{Code: sqlite3.ErrMisuse}))
	assert.False(t, IsStaleHandle(nil))
	assert.False(t, IsStaleHandle(errors.New("no such table: cards")))
}

func TestIsDuplicateColumn(t *testing.T) {
	t.Parallel()

	assert.True(t, isDuplicateColumn(errors.New("duplicate column name: rating")))
	assert.False(t, isDuplicateColumn(errors.New("near \"ADD\": syntax error")))
	assert.False(t, isDuplicateColumn(nil))
}
