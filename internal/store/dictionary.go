package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocabcards/internal/domain"
)

// DictionaryStore defines the interface for dictionary persistence.
type DictionaryStore interface {
	// Create inserts a dictionary. Returns ErrInvalidEntity when the language
	// does not exist.
	Create(ctx context.Context, in domain.DictionaryInput) (*domain.Dictionary, error)

	// GetByID returns ErrDictionaryNotFound if the dictionary does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Dictionary, error)

	// ListByLanguage returns the language's dictionaries with card counts,
	// ordered by sort order and then name.
	ListByLanguage(ctx context.Context, languageID int64) ([]domain.DictionarySummary, error)

	// Update applies a partial update; nil patch fields keep their values.
	Update(ctx context.Context, id int64, patch domain.DictionaryPatch) error

	// Delete removes the dictionary. Its cards and their examples are removed
	// by the storage-level cascade.
	Delete(ctx context.Context, id int64) error

	// FirstOrCreateDefault returns the language's first dictionary by sort
	// order, creating the default one if the language has none.
	FirstOrCreateDefault(ctx context.Context, languageID int64) (*domain.Dictionary, error)

	// MoveAllCards reassigns every card of source to target and returns the
	// number of cards moved.
	MoveAllCards(ctx context.Context, sourceID, targetID int64) (int64, error)

	// WithTx returns a DictionaryStore that runs every statement in tx.
	WithTx(tx *sql.Tx) DictionaryStore
}
