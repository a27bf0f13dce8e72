package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/vocabcards/internal/config"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/stretchr/testify/require"
)

// openRawDB opens a database file without touching the schema.
func openRawDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "vocab.db"),
		BusyTimeoutMS: 1000,
	}
	db, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// openTestDB opens a fresh database with the current schema.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	db := openRawDB(t)
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

type fixture struct {
	db    *DB
	langs *LanguageStore
	dicts *DictionaryStore
	cards *CardStore
	lang  *domain.Language
	dict  *domain.Dictionary
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := openTestDB(t)
	f := &fixture{
		db:    db,
		langs: NewLanguageStore(db.SQL(), nil),
		dicts: NewDictionaryStore(db.SQL(), nil),
		cards: NewCardStore(db.SQL(), nil),
	}
	var err error
	f.lang, err = f.langs.FirstOrCreateDefault(ctx)
	require.NoError(t, err)
	f.dict, err = f.dicts.FirstOrCreateDefault(ctx, f.lang.ID)
	require.NoError(t, err)
	return f
}

func (f *fixture) newDictionary(t *testing.T, name string) *domain.Dictionary {
	t.Helper()
	d, err := f.dicts.Create(context.Background(), domain.DictionaryInput{LanguageID: f.lang.ID, Name: name})
	require.NoError(t, err)
	return d
}

func (f *fixture) addCard(t *testing.T, dictID int64, word, translation string, examples ...string) int64 {
	t.Helper()
	id, err := f.cards.Create(context.Background(), dictID, domain.CardInput{
		Word:        word,
		Translation: translation,
		Examples:    examples,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) countRows(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.SQL().QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}
