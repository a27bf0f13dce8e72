package sqlite

import (
	"context"
	"testing"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryStore_ListByLanguageWithCounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	zeta, err := f.dicts.Create(ctx, domain.DictionaryInput{LanguageID: f.lang.ID, Name: "zeta", SortOrder: -1})
	require.NoError(t, err)
	alpha := f.newDictionary(t, "Alpha")
	f.addCard(t, alpha.ID, "a", "1")
	f.addCard(t, alpha.ID, "b", "2")

	list, err := f.dicts.ListByLanguage(ctx, f.lang.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, zeta.ID, list[0].ID, "lowest sort order first")
	assert.Equal(t, "Alpha", list[1].Name, "then by name")
	assert.Equal(t, 2, list[1].CardsCount)
	assert.Equal(t, domain.DefaultDictionaryName, list[2].Name)
	assert.Equal(t, 0, list[2].CardsCount)
}

func TestDictionaryStore_CreateRequiresLanguage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.dicts.Create(ctx, domain.DictionaryInput{LanguageID: 777, Name: "x"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	_, err = f.dicts.Create(ctx, domain.DictionaryInput{LanguageID: f.lang.ID, Name: "  "})
	assert.ErrorIs(t, err, domain.ErrNameEmpty)
}

func TestDictionaryStore_UpdatePatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	color := "#ff0000"
	d, err := f.dicts.Create(ctx, domain.DictionaryInput{LanguageID: f.lang.ID, Name: "Nouns", Color: &color, SortOrder: 3})
	require.NoError(t, err)

	newName := "Things"
	require.NoError(t, f.dicts.Update(ctx, d.ID, domain.DictionaryPatch{Name: &newName}))
	got, err := f.dicts.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Things", got.Name)
	require.NotNil(t, got.Color)
	assert.Equal(t, color, *got.Color)
	assert.Equal(t, 3, got.SortOrder)

	order := 0
	blank := ""
	require.NoError(t, f.dicts.Update(ctx, d.ID, domain.DictionaryPatch{SortOrder: &order, Color: &blank}))
	got, err = f.dicts.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Things", got.Name)
	assert.Nil(t, got.Color)
	assert.Equal(t, 0, got.SortOrder)

	assert.ErrorIs(t, f.dicts.Update(ctx, 999, domain.DictionaryPatch{Name: &newName}), store.ErrDictionaryNotFound)
}

func TestDictionaryStore_DeleteCascadesToCards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.newDictionary(t, "Doomed")
	id := f.addCard(t, d.ID, "a", "1", "ex1", "ex2")

	require.NoError(t, f.dicts.Delete(ctx, d.ID))

	_, err := f.cards.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM examples`))
	assert.ErrorIs(t, f.dicts.Delete(ctx, d.ID), store.ErrDictionaryNotFound)
}

func TestDictionaryStore_MoveAllCards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	src := f.newDictionary(t, "Source")
	ids := []int64{f.addCard(t, src.ID, "a", "1"), f.addCard(t, src.ID, "b", "2")}

	moved, err := f.dicts.MoveAllCards(ctx, src.ID, f.dict.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	for _, id := range ids {
		card, err := f.cards.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, f.dict.ID, card.DictionaryID)
	}
}

func TestDictionaryStore_FirstOrCreateDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	again, err := f.dicts.FirstOrCreateDefault(ctx, f.lang.ID)
	require.NoError(t, err)
	assert.Equal(t, f.dict.ID, again.ID)

	lang, err := f.langs.Create(ctx, domain.LanguageInput{Name: "German"})
	require.NoError(t, err)
	created, err := f.dicts.FirstOrCreateDefault(ctx, lang.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDictionaryName, created.Name)
	assert.Equal(t, lang.ID, created.LanguageID)
}
