package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewCardService(nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCardService_CreateTrimsAndValidates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	sel := env.defaults(t)

	card, err := env.cardSvc.CreateCard(ctx, sel.Dictionary.ID, domain.CardInput{
		Word:        "  cat ",
		Translation: " кот ",
		Examples:    []string{" The cat. ", "  "},
		Rating:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, "cat", card.Word)
	assert.Equal(t, "кот", card.Translation)
	assert.Equal(t, []string{"The cat."}, card.Sentences())
	assert.Equal(t, domain.RatingKnown, card.Rating)

	_, err = env.cardSvc.CreateCard(ctx, sel.Dictionary.ID, domain.CardInput{Word: "dog", Translation: "   "})
	assert.ErrorIs(t, err, domain.ErrTranslationEmpty)

	_, err = env.cardSvc.CreateCard(ctx, 777, domain.CardInput{Word: "dog", Translation: "пёс"})
	assert.ErrorIs(t, err, store.ErrDictionaryNotFound)
}

func TestCardService_UpdateDeleteMove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	sel := env.defaults(t)
	other, err := env.dicts.Create(ctx, domain.DictionaryInput{LanguageID: sel.Language.ID, Name: "Other"})
	require.NoError(t, err)
	id := env.addCard(t, sel.Dictionary.ID, "cat", "кот", "one", "two")

	updated, err := env.cardSvc.UpdateCard(ctx, id, domain.CardInput{Word: "cat", Translation: "кошка"})
	require.NoError(t, err)
	assert.Empty(t, updated.Examples)

	require.NoError(t, env.cardSvc.MoveCard(ctx, id, other.ID))
	assert.ErrorIs(t, env.cardSvc.MoveCard(ctx, id, 555), store.ErrDictionaryNotFound)

	listed, err := env.cardSvc.ListCards(ctx, other.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	found, err := env.cardSvc.SearchCards(ctx, "КОШ", nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	first, err := env.cardSvc.Navigate(ctx, other.ID, 0, store.DirectionFirst)
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)

	n, err := env.cardSvc.CountCards(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rated, err := env.cardSvc.RateCard(ctx, id, -4)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingUnknown, rated.Rating)

	require.NoError(t, env.cardSvc.DeleteCard(ctx, id))
	err = env.cardSvc.DeleteCard(ctx, id)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	var svcErr *ServiceError
	assert.False(t, errors.As(err, &svcErr), "not-found passes through unwrapped")

	_, err = env.cardSvc.GetCard(ctx, id)
	assert.True(t, store.IsNotFoundError(err))
}
