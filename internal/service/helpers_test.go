package service

import (
	"context"
	"testing"

	"github.com/phrazzld/vocabcards/internal/platform/sqlite"
	"github.com/phrazzld/vocabcards/internal/testdb"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db      *sqlite.DB
	langs   *sqlite.LanguageStore
	dicts   *sqlite.DictionaryStore
	cards   *sqlite.CardStore
	library LibraryService
	cardSvc CardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testdb.Open(t)
	stores := testdb.NewStores(db)
	env := &testEnv{
		db:    db,
		langs: stores.Languages,
		dicts: stores.Dictionaries,
		cards: stores.Cards,
	}

	var err error
	env.library, err = NewLibraryService(db.SQL(), env.langs, env.dicts, nil)
	require.NoError(t, err)
	env.cardSvc, err = NewCardService(env.cards, env.dicts, nil)
	require.NoError(t, err)
	return env
}

func (e *testEnv) defaults(t *testing.T) *Selection {
	t.Helper()
	sel, err := e.library.ResolveSelection(context.Background(), nil, nil)
	require.NoError(t, err)
	return sel
}

func (e *testEnv) addCard(t *testing.T, dictID int64, word, translation string, examples ...string) int64 {
	t.Helper()
	return testdb.AddCard(t, e.cards, dictID, word, translation, examples...)
}
