package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
)

var _ store.CardStore = (*MockCardStore)(nil)

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	CreateFn                     func(ctx context.Context, dictionaryID int64, in domain.CardInput) (int64, error)
	UpdateFn                     func(ctx context.Context, id int64, in domain.CardInput) error
	DeleteFn                     func(ctx context.Context, id int64) error
	MoveToDictionaryFn           func(ctx context.Context, id, dictionaryID int64) error
	GetByIDFn                    func(ctx context.Context, id int64) (*domain.Card, error)
	SearchFn                     func(ctx context.Context, query string, dictionaryID *int64, limit, offset int) ([]domain.Card, error)
	ListByDictionaryFn           func(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error)
	ListAllWithExamplesFn        func(ctx context.Context, dictionaryID int64) ([]domain.Card, error)
	ExistsInDictionaryFn         func(ctx context.Context, word string, dictionaryID int64) (bool, error)
	ExistsByWordAndTranslationFn func(ctx context.Context, word, translation string, dictionaryID int64) (bool, error)
	AdjustRatingFn               func(ctx context.Context, id int64, delta int, lo, hi domain.Rating) (domain.Rating, error)
	SetRatingFn                  func(ctx context.Context, id int64, rating int) error
	ListWeakFn                   func(ctx context.Context, dictionaryID int64, below domain.Rating) ([]domain.Card, error)
	RandomTranslationsFn         func(ctx context.Context, dictionaryID, excludeCardID int64, limit int) ([]string, error)
	CountByDictionaryFn          func(ctx context.Context, dictionaryID int64) (int, error)
	NavigateFn                   func(ctx context.Context, dictionaryID, fromID int64, dir store.Direction) (*domain.Card, error)
	WithTxFn                     func(tx *sql.Tx) store.CardStore

	// Default return values
	Card         *domain.Card
	DefaultError error
}

// Create implements the CardStore.Create method
func (m *MockCardStore) Create(ctx context.Context, dictionaryID int64, in domain.CardInput) (int64, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, dictionaryID, in)
	}
	return 0, m.DefaultError
}

// Update implements the CardStore.Update method
func (m *MockCardStore) Update(ctx context.Context, id int64, in domain.CardInput) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return m.DefaultError
}

// Delete implements the CardStore.Delete method
func (m *MockCardStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// MoveToDictionary implements the CardStore.MoveToDictionary method
func (m *MockCardStore) MoveToDictionary(ctx context.Context, id, dictionaryID int64) error {
	if m.MoveToDictionaryFn != nil {
		return m.MoveToDictionaryFn(ctx, id, dictionaryID)
	}
	return m.DefaultError
}

// GetByID implements the CardStore.GetByID method
func (m *MockCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Card, m.DefaultError
}

// Search implements the CardStore.Search method
func (m *MockCardStore) Search(
	ctx context.Context,
	query string,
	dictionaryID *int64,
	limit, offset int,
) ([]domain.Card, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, dictionaryID, limit, offset)
	}
	return nil, m.DefaultError
}

// ListByDictionary implements the CardStore.ListByDictionary method
func (m *MockCardStore) ListByDictionary(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error) {
	if m.ListByDictionaryFn != nil {
		return m.ListByDictionaryFn(ctx, dictionaryID, limit, offset)
	}
	return nil, m.DefaultError
}

// ListAllWithExamples implements the CardStore.ListAllWithExamples method
func (m *MockCardStore) ListAllWithExamples(ctx context.Context, dictionaryID int64) ([]domain.Card, error) {
	if m.ListAllWithExamplesFn != nil {
		return m.ListAllWithExamplesFn(ctx, dictionaryID)
	}
	return nil, m.DefaultError
}

// ExistsInDictionary implements the CardStore.ExistsInDictionary method
func (m *MockCardStore) ExistsInDictionary(ctx context.Context, word string, dictionaryID int64) (bool, error) {
	if m.ExistsInDictionaryFn != nil {
		return m.ExistsInDictionaryFn(ctx, word, dictionaryID)
	}
	return false, m.DefaultError
}

// ExistsByWordAndTranslation implements the CardStore.ExistsByWordAndTranslation method
func (m *MockCardStore) ExistsByWordAndTranslation(
	ctx context.Context,
	word, translation string,
	dictionaryID int64,
) (bool, error) {
	if m.ExistsByWordAndTranslationFn != nil {
		return m.ExistsByWordAndTranslationFn(ctx, word, translation, dictionaryID)
	}
	return false, m.DefaultError
}

// AdjustRating implements the CardStore.AdjustRating method
func (m *MockCardStore) AdjustRating(
	ctx context.Context,
	id int64,
	delta int,
	lo, hi domain.Rating,
) (domain.Rating, error) {
	if m.AdjustRatingFn != nil {
		return m.AdjustRatingFn(ctx, id, delta, lo, hi)
	}
	return 0, m.DefaultError
}

// SetRating implements the CardStore.SetRating method
func (m *MockCardStore) SetRating(ctx context.Context, id int64, rating int) error {
	if m.SetRatingFn != nil {
		return m.SetRatingFn(ctx, id, rating)
	}
	return m.DefaultError
}

// ListWeak implements the CardStore.ListWeak method
func (m *MockCardStore) ListWeak(ctx context.Context, dictionaryID int64, below domain.Rating) ([]domain.Card, error) {
	if m.ListWeakFn != nil {
		return m.ListWeakFn(ctx, dictionaryID, below)
	}
	return nil, m.DefaultError
}

// RandomTranslations implements the CardStore.RandomTranslations method
func (m *MockCardStore) RandomTranslations(
	ctx context.Context,
	dictionaryID, excludeCardID int64,
	limit int,
) ([]string, error) {
	if m.RandomTranslationsFn != nil {
		return m.RandomTranslationsFn(ctx, dictionaryID, excludeCardID, limit)
	}
	return nil, m.DefaultError
}

// CountByDictionary implements the CardStore.CountByDictionary method
func (m *MockCardStore) CountByDictionary(ctx context.Context, dictionaryID int64) (int, error) {
	if m.CountByDictionaryFn != nil {
		return m.CountByDictionaryFn(ctx, dictionaryID)
	}
	return 0, m.DefaultError
}

// Navigate implements the CardStore.Navigate method
func (m *MockCardStore) Navigate(
	ctx context.Context,
	dictionaryID, fromID int64,
	dir store.Direction,
) (*domain.Card, error) {
	if m.NavigateFn != nil {
		return m.NavigateFn(ctx, dictionaryID, fromID, dir)
	}
	return m.Card, m.DefaultError
}

// WithTx returns the mock itself unless WithTxFn is set.
func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	if m.WithTxFn != nil {
		return m.WithTxFn(tx)
	}
	return m
}
