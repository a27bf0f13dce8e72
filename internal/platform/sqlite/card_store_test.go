package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name   string
		rating int
		want   domain.Rating
	}{
		{"in range", 1, domain.RatingWeak},
		{"above range", 9, domain.RatingKnown},
		{"below range", -4, domain.RatingUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := "kæt"
			id, err := f.cards.Create(ctx, f.dict.ID, domain.CardInput{
				Word:          "cat",
				Translation:   "кот",
				Transcription: &tr,
				Examples:      []string{"The cat sleeps.", "A black cat."},
				Rating:        tc.rating,
			})
			require.NoError(t, err)

			card, err := f.cards.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, card.Rating)
			assert.Equal(t, "cat", card.Word)
			assert.Equal(t, "кот", card.Translation)
			require.NotNil(t, card.Transcription)
			assert.Equal(t, "kæt", *card.Transcription)
			assert.Equal(t, f.dict.ID, card.DictionaryID)
			assert.Equal(t, []string{"The cat sleeps.", "A black cat."}, card.Sentences())
			assert.False(t, card.CreatedAt.IsZero())
		})
	}
}

func TestCardStore_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cards.Create(ctx, f.dict.ID, domain.CardInput{Word: " ", Translation: "x"})
	assert.ErrorIs(t, err, domain.ErrWordEmpty)

	_, err = f.cards.Create(ctx, 4242, domain.CardInput{Word: "a", Translation: "b", Examples: []string{"c"}})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM cards`))
	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM examples`))
}

func TestCardStore_CreateRollsBackOnExampleFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO cards").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO examples").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO examples").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	cards := NewCardStore(db, nil)
	_, err = cards.Create(context.Background(), 1, domain.CardInput{
		Word:        "cat",
		Translation: "кот",
		Examples:    []string{"one", "two"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStore_UpdateReplacesExamples(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.addCard(t, f.dict.ID, "cat", "кот", "old one", "old two")

	err := f.cards.Update(ctx, id, domain.CardInput{
		Word:        "cat",
		Translation: "кошка",
		Examples:    []string{"new"},
		Rating:      5,
	})
	require.NoError(t, err)

	card, err := f.cards.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "кошка", card.Translation)
	assert.Equal(t, domain.RatingKnown, card.Rating)
	assert.Equal(t, []string{"new"}, card.Sentences())

	require.NoError(t, f.cards.Update(ctx, id, domain.CardInput{Word: "cat", Translation: "кошка"}))
	card, err = f.cards.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, card.Examples)
	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM examples WHERE card_id = ?`, id))

	err = f.cards.Update(ctx, 9999, domain.CardInput{Word: "x", Translation: "y"})
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestCardStore_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.addCard(t, f.dict.ID, "cat", "кот", "a", "b")
	keep := f.addCard(t, f.dict.ID, "dog", "пёс", "c")

	require.NoError(t, f.cards.Delete(ctx, id))

	_, err := f.cards.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	assert.Equal(t, 0, f.countRows(t, `SELECT COUNT(*) FROM examples WHERE card_id = ?`, id))
	assert.Equal(t, 1, f.countRows(t, `SELECT COUNT(*) FROM examples WHERE card_id = ?`, keep))

	assert.ErrorIs(t, f.cards.Delete(ctx, id), store.ErrCardNotFound)
}

func TestCardStore_MoveToDictionary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.newDictionary(t, "Verbs")
	id := f.addCard(t, f.dict.ID, "run", "бежать")

	require.NoError(t, f.cards.MoveToDictionary(ctx, id, other.ID))
	card, err := f.cards.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, other.ID, card.DictionaryID)

	assert.ErrorIs(t, f.cards.MoveToDictionary(ctx, id, 31337), store.ErrInvalidEntity)
	assert.ErrorIs(t, f.cards.MoveToDictionary(ctx, 31337, other.ID), store.ErrCardNotFound)
}

func TestCardStore_SearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.newDictionary(t, "Other")
	f.addCard(t, f.dict.ID, "Cat", "Кот")
	f.addCard(t, f.dict.ID, "category", "категория")
	f.addCard(t, other.ID, "scatter", "разбросать")
	f.addCard(t, f.dict.ID, "dog", "пёс")

	all, err := f.cards.Search(ctx, "CAT", nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := f.cards.Search(ctx, "cat", &f.dict.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	byTranslation, err := f.cards.Search(ctx, "кот", nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, byTranslation, 1)
	assert.Equal(t, "Cat", byTranslation[0].Word)

	paged, err := f.cards.Search(ctx, "cat", nil, 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "category", paged[0].Word)
}

func TestCardStore_ExistenceChecks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.newDictionary(t, "Other")
	f.addCard(t, f.dict.ID, "Ёж", "Hedgehog")

	tests := []struct {
		name        string
		word        string
		translation string
		dictID      int64
		wantWord    bool
		wantBoth    bool
	}{
		{"exact", "Ёж", "Hedgehog", f.dict.ID, true, true},
		{"different case", "ёЖ", "HEDGEHOG", f.dict.ID, true, true},
		{"other translation", "ёж", "porcupine", f.dict.ID, true, false},
		{"other dictionary", "ёж", "hedgehog", other.ID, false, false},
		{"other word", "еж", "hedgehog", f.dict.ID, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.cards.ExistsInDictionary(ctx, tc.word, tc.dictID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWord, got)

			got, err = f.cards.ExistsByWordAndTranslation(ctx, tc.word, tc.translation, tc.dictID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBoth, got)
		})
	}
}

func TestCardStore_AdjustRatingClamps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.addCard(t, f.dict.ID, "cat", "кот")

	steps := []struct {
		delta int
		want  domain.Rating
	}{
		{-1, domain.RatingUnknown},
		{1, domain.RatingWeak},
		{1, domain.RatingKnown},
		{1, domain.RatingKnown},
		{-1, domain.RatingWeak},
	}
	for _, step := range steps {
		got, err := f.cards.AdjustRating(ctx, id, step.delta, domain.RatingUnknown, domain.RatingKnown)
		require.NoError(t, err)
		assert.Equal(t, step.want, got)
	}

	_, err := f.cards.AdjustRating(ctx, 404, 1, domain.RatingUnknown, domain.RatingKnown)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	require.NoError(t, f.cards.SetRating(ctx, id, 17))
	card, err := f.cards.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingKnown, card.Rating)
}

func TestCardStore_AdjustRatingUsesGivenBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.addCard(t, f.dict.ID, "cat", "кот")

	got, err := f.cards.AdjustRating(ctx, id, 2, domain.RatingUnknown, domain.RatingWeak)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingWeak, got)

	got, err = f.cards.AdjustRating(ctx, id, -5, domain.RatingWeak, domain.RatingKnown)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingWeak, got)
}

func TestCardStore_ListQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ids := []int64{
		f.addCard(t, f.dict.ID, "a", "1", "a1", "a2"),
		f.addCard(t, f.dict.ID, "b", "2"),
		f.addCard(t, f.dict.ID, "c", "3", "c1"),
	}
	require.NoError(t, f.cards.SetRating(ctx, ids[0], 2))
	require.NoError(t, f.cards.SetRating(ctx, ids[2], 1))

	page, err := f.cards.ListByDictionary(ctx, f.dict.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].ID)

	all, err := f.cards.ListAllWithExamples(ctx, f.dict.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a1", "a2"}, all[0].Sentences())
	assert.Empty(t, all[1].Examples)
	assert.Equal(t, []string{"c1"}, all[2].Sentences())

	weak, err := f.cards.ListWeak(ctx, f.dict.ID, domain.RatingKnown)
	require.NoError(t, err)
	require.Len(t, weak, 2)
	assert.Equal(t, ids[1], weak[0].ID, "weakest first")
	assert.Equal(t, ids[2], weak[1].ID)

	n, err := f.cards.CountByDictionary(ctx, f.dict.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCardStore_RandomTranslations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	current := f.addCard(t, f.dict.ID, "cat", "кот")
	f.addCard(t, f.dict.ID, "tomcat", "кот")
	f.addCard(t, f.dict.ID, "dog", "пёс")
	f.addCard(t, f.dict.ID, "hound", "пёс")
	f.addCard(t, f.dict.ID, "fish", "рыба")

	got, err := f.cards.RandomTranslations(ctx, f.dict.ID, current, 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"кот", "пёс", "рыба"}, got)

	limited, err := f.cards.RandomTranslations(ctx, f.dict.ID, current, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCardStore_Navigate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.newDictionary(t, "Other")
	a := f.addCard(t, f.dict.ID, "a", "1")
	f.addCard(t, other.ID, "x", "9")
	b := f.addCard(t, f.dict.ID, "b", "2")
	c := f.addCard(t, f.dict.ID, "c", "3")

	tests := []struct {
		name string
		from int64
		dir  store.Direction
		want int64
	}{
		{"first", 0, store.DirectionFirst, a},
		{"last", 0, store.DirectionLast, c},
		{"next skips other dictionary", a, store.DirectionNext, b},
		{"prev", c, store.DirectionPrev, b},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			card, err := f.cards.Navigate(ctx, f.dict.ID, tc.from, tc.dir)
			require.NoError(t, err)
			assert.Equal(t, tc.want, card.ID)
		})
	}

	_, err := f.cards.Navigate(ctx, f.dict.ID, c, store.DirectionNext)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}
