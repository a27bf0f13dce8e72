package sqlite

import (
	"context"
	"testing"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageStore_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	code := " de "
	de, err := f.langs.Create(ctx, domain.LanguageInput{Name: " German ", Code: &code})
	require.NoError(t, err)
	assert.Equal(t, "German", de.Name)
	require.NotNil(t, de.Code)
	assert.Equal(t, "de", *de.Code)

	_, err = f.langs.Create(ctx, domain.LanguageInput{Name: "German"})
	assert.ErrorIs(t, err, store.ErrLanguageExists)
	assert.True(t, store.IsDuplicateError(err))

	list, err := f.langs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "English", list[0].Name)
	assert.Equal(t, "German", list[1].Name)

	require.NoError(t, f.langs.Update(ctx, de.ID, domain.LanguageInput{Name: "Deutsch"}))
	got, err := f.langs.GetByID(ctx, de.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deutsch", got.Name)
	assert.Nil(t, got.Code)

	err = f.langs.Update(ctx, de.ID, domain.LanguageInput{Name: "English"})
	assert.ErrorIs(t, err, store.ErrLanguageExists)

	_, err = f.langs.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, store.ErrLanguageNotFound)
}

func TestLanguageStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCard(t, f.dict.ID, "cat", "кот", "example")

	require.NoError(t, f.langs.Delete(ctx, f.lang.ID))

	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM dictionaries`))
	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM cards`))
	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM examples`))
	assert.ErrorIs(t, f.langs.Delete(ctx, f.lang.ID), store.ErrLanguageNotFound)
}

func TestLanguageStore_FirstOrCreateDefaultMatchesCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.langs.Update(ctx, f.lang.ID, domain.LanguageInput{
		Name: "Englisch",
		Code: domain.StringPtr(domain.DefaultLanguageCode),
	}))

	got, err := f.langs.FirstOrCreateDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.lang.ID, got.ID)
}
