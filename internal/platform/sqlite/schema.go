package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/pressly/goose/v3"
)

// Base tables. Creation is idempotent; columns introduced after the first
// release of the cards table are added separately so that old files migrate.
var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS languages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		code TEXT,
		icon TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS dictionaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		language_id INTEGER NOT NULL REFERENCES languages(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		color TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL,
		translation TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS examples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		sentence TEXT NOT NULL
	)`,
}

// cardColumn is a column added to cards after its first release.
type cardColumn struct {
	name       string
	definition string
}

// Order matters only for readability; each column is checked independently.
var addedCardColumns = []cardColumn{
	{"explanation", "TEXT"},
	{"transcription", "TEXT"},
	{"rating", "INTEGER DEFAULT 0"},
	// SQLite accepts REFERENCES on ADD COLUMN only with a NULL default.
	{"dictionary_id", "INTEGER REFERENCES dictionaries(id) ON DELETE CASCADE"},
}

var createIndexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_cards_dictionary ON cards(dictionary_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_word ON cards(dictionary_id, word COLLATE ` + CollationNoCase + `)`,
	`CREATE INDEX IF NOT EXISTS idx_examples_card_id ON examples(card_id)`,
}

// EnsureSchema brings the database to the current shape without losing data.
// It is safe to call on every start. When the connection handle turns out to
// be unusable, the database is reopened and the whole procedure is retried
// exactly once.
func (d *DB) EnsureSchema(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, d.logger)

	conn := d.SQL()
	var err error
	if conn == nil {
		err = sql.ErrConnDone
	} else {
		err = ensureSchema(ctx, conn, log)
	}
	if err == nil || !IsStaleHandle(err) {
		return err
	}

	log.Warn("database handle is stale, reopening before retrying schema setup",
		slog.String("error", err.Error()))
	if reopenErr := d.Reopen(ctx); reopenErr != nil {
		return fmt.Errorf("schema setup failed: %w (reopen failed: %v)", err, reopenErr)
	}
	return ensureSchema(ctx, d.SQL(), log)
}

// schemaSteps are run in order by goose with versioning disabled, so every
// step executes on each start and must be idempotent. Each step runs in its
// own transaction on the connection goose holds for the run; the pool has a
// single connection, so a step must never reach back to the *sql.DB.
func schemaSteps(log *slog.Logger) []*goose.Migration {
	step := func(version int64, fn func(context.Context, *sql.Tx) error) *goose.Migration {
		return goose.NewGoMigration(version, &goose.GoFunc{RunTx: fn}, nil)
	}
	return []*goose.Migration{
		step(1, createTables),
		step(2, func(ctx context.Context, tx *sql.Tx) error {
			return addMissingCardColumns(ctx, tx, log)
		}),
		step(3, func(ctx context.Context, tx *sql.Tx) error {
			if err := backfill(ctx, tx, log); err != nil {
				return fmt.Errorf("failed to backfill cards: %w", err)
			}
			return nil
		}),
		step(4, createIndexes),
	}
}

func ensureSchema(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, nil,
		goose.WithDisableVersioning(true),
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(schemaSteps(log)...),
		goose.WithLogger(&gooseLogger{log: log}),
		goose.WithVerbose(true),
	)
	if err != nil {
		return fmt.Errorf("failed to prepare schema steps: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return err
	}

	log.Debug("schema is up to date")
	return nil
}

func createTables(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range createTableStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func createIndexes(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range createIndexStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// gooseLogger forwards goose progress lines to slog at debug level.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level and does not exit; the failure is returned by Up.
func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// tableColumns returns the column names of table.
func tableColumns(ctx context.Context, db store.DBTX, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

func addMissingCardColumns(ctx context.Context, db store.DBTX, log *slog.Logger) error {
	existing, err := tableColumns(ctx, db, "cards")
	if err != nil {
		return err
	}

	for _, col := range addedCardColumns {
		if existing[col.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE cards ADD COLUMN %s %s", col.name, col.definition)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// Another handle may have added it between the check and the ALTER.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("failed to add column cards.%s: %w", col.name, err)
		}
		log.Info("added column to cards", slog.String("column", col.name))
	}
	return nil
}

// backfill repairs legacy card rows. It must run inside one transaction so
// that a failure leaves no default language without its dictionary.
func backfill(ctx context.Context, tx *sql.Tx, log *slog.Logger) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE cards SET rating = 0 WHERE rating IS NULL`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cards SET rating = MAX(0, MIN(2, rating)) WHERE rating < 0 OR rating > 2`); err != nil {
		return err
	}

	var orphans, languages int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cards
		WHERE dictionary_id IS NULL
		   OR dictionary_id NOT IN (SELECT id FROM dictionaries)
	`).Scan(&orphans); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM languages`).Scan(&languages); err != nil {
		return err
	}
	if orphans == 0 && languages > 0 {
		return nil
	}

	lang, err := NewLanguageStore(tx, log).FirstOrCreateDefault(ctx)
	if err != nil {
		return err
	}
	dict, err := NewDictionaryStore(tx, log).FirstOrCreateDefault(ctx, lang.ID)
	if err != nil {
		return err
	}

	if orphans > 0 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE cards SET dictionary_id = ?
			WHERE dictionary_id IS NULL
			   OR dictionary_id NOT IN (SELECT id FROM dictionaries)
		`, dict.ID); err != nil {
			return err
		}
		log.Info("assigned legacy cards to default dictionary",
			slog.Int("cards", orphans),
			slog.Int64("dictionary_id", dict.ID))
	}
	return nil
}
