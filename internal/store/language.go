package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocabcards/internal/domain"
)

// LanguageStore defines the interface for language persistence.
type LanguageStore interface {
	// Create returns ErrLanguageExists when the name is taken.
	Create(ctx context.Context, in domain.LanguageInput) (*domain.Language, error)
	GetByID(ctx context.Context, id int64) (*domain.Language, error)
	// List returns all languages ordered by name.
	List(ctx context.Context) ([]domain.Language, error)
	Update(ctx context.Context, id int64, in domain.LanguageInput) error
	// Delete removes the language; its dictionaries, cards and examples
	// cascade.
	Delete(ctx context.Context, id int64) error
	// FirstOrCreateDefault finds the bootstrap language by name or code,
	// creating it when absent.
	FirstOrCreateDefault(ctx context.Context) (*domain.Language, error)
	WithTx(tx *sql.Tx) LanguageStore
}
