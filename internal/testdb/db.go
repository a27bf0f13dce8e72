package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/vocabcards/internal/config"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/sqlite"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds how long a test waits on a locked database.
const TestTimeout = 5 * time.Second

// Stores bundles the SQLite stores of one database.
type Stores struct {
	Languages    *sqlite.LanguageStore
	Dictionaries *sqlite.DictionaryStore
	Cards        *sqlite.CardStore
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Open creates a database in t.TempDir(), applies the schema and registers
// cleanup.
func Open(t testing.TB) *sqlite.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "test.db"),
		BusyTimeoutMS: int(TestTimeout / time.Millisecond),
	}, DiscardLogger())
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	require.NoError(t, db.EnsureSchema(ctx), "Failed to apply schema")
	return db
}

// NewStores builds the stores over db. Call it after Open, which has already
// run EnsureSchema.
func NewStores(db *sqlite.DB) Stores {
	log := DiscardLogger()
	return Stores{
		Languages:    sqlite.NewLanguageStore(db.SQL(), log),
		Dictionaries: sqlite.NewDictionaryStore(db.SQL(), log),
		Cards:        sqlite.NewCardStore(db.SQL(), log),
	}
}

// Defaults returns the bootstrap language and its default dictionary,
// creating them if needed.
func Defaults(t testing.TB, s Stores) (*domain.Language, *domain.Dictionary) {
	t.Helper()
	ctx := context.Background()

	lang, err := s.Languages.FirstOrCreateDefault(ctx)
	require.NoError(t, err)
	dict, err := s.Dictionaries.FirstOrCreateDefault(ctx, lang.ID)
	require.NoError(t, err)
	return lang, dict
}

// AddDictionary creates a dictionary in the given language.
func AddDictionary(t testing.TB, s Stores, languageID int64, name string) int64 {
	t.Helper()

	dict, err := s.Dictionaries.Create(context.Background(), domain.DictionaryInput{
		LanguageID: languageID,
		Name:       name,
	})
	require.NoError(t, err)
	return dict.ID
}

// AddCard creates a card with rating zero and returns its id.
func AddCard(t testing.TB, cards store.CardStore, dictionaryID int64, word, translation string, examples ...string) int64 {
	t.Helper()

	id, err := cards.Create(context.Background(), dictionaryID, domain.CardInput{
		Word:        word,
		Translation: translation,
		Examples:    examples,
	})
	require.NoError(t, err)
	return id
}

// WithTx executes a test function within a transaction, automatically rolling
// back after the function returns.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if fn already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
