package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
)

var _ store.DictionaryStore = (*MockDictionaryStore)(nil)

// MockDictionaryStore implements store.DictionaryStore for testing
type MockDictionaryStore struct {
	CreateFn               func(ctx context.Context, in domain.DictionaryInput) (*domain.Dictionary, error)
	GetByIDFn              func(ctx context.Context, id int64) (*domain.Dictionary, error)
	ListByLanguageFn       func(ctx context.Context, languageID int64) ([]domain.DictionarySummary, error)
	UpdateFn               func(ctx context.Context, id int64, patch domain.DictionaryPatch) error
	DeleteFn               func(ctx context.Context, id int64) error
	FirstOrCreateDefaultFn func(ctx context.Context, languageID int64) (*domain.Dictionary, error)
	MoveAllCardsFn         func(ctx context.Context, sourceID, targetID int64) (int64, error)

	// Default return values. GetByID falls back to Dictionary, or to a
	// dictionary carrying the requested id when Dictionary is nil.
	Dictionary   *domain.Dictionary
	DefaultError error
}

// Create implements the DictionaryStore.Create method
func (m *MockDictionaryStore) Create(ctx context.Context, in domain.DictionaryInput) (*domain.Dictionary, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return m.Dictionary, m.DefaultError
}

// GetByID implements the DictionaryStore.GetByID method
func (m *MockDictionaryStore) GetByID(ctx context.Context, id int64) (*domain.Dictionary, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	if m.Dictionary != nil {
		return m.Dictionary, nil
	}
	return &domain.Dictionary{ID: id, Name: "Default"}, nil
}

// ListByLanguage implements the DictionaryStore.ListByLanguage method
func (m *MockDictionaryStore) ListByLanguage(ctx context.Context, languageID int64) ([]domain.DictionarySummary, error) {
	if m.ListByLanguageFn != nil {
		return m.ListByLanguageFn(ctx, languageID)
	}
	return nil, m.DefaultError
}

// Update implements the DictionaryStore.Update method
func (m *MockDictionaryStore) Update(ctx context.Context, id int64, patch domain.DictionaryPatch) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return m.DefaultError
}

// Delete implements the DictionaryStore.Delete method
func (m *MockDictionaryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// FirstOrCreateDefault implements the DictionaryStore.FirstOrCreateDefault method
func (m *MockDictionaryStore) FirstOrCreateDefault(ctx context.Context, languageID int64) (*domain.Dictionary, error) {
	if m.FirstOrCreateDefaultFn != nil {
		return m.FirstOrCreateDefaultFn(ctx, languageID)
	}
	return m.Dictionary, m.DefaultError
}

// MoveAllCards implements the DictionaryStore.MoveAllCards method
func (m *MockDictionaryStore) MoveAllCards(ctx context.Context, sourceID, targetID int64) (int64, error) {
	if m.MoveAllCardsFn != nil {
		return m.MoveAllCardsFn(ctx, sourceID, targetID)
	}
	return 0, m.DefaultError
}

// WithTx returns the mock itself.
func (m *MockDictionaryStore) WithTx(*sql.Tx) store.DictionaryStore {
	return m
}
