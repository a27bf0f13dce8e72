package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/store"
)

// DictionaryStore implements store.DictionaryStore on SQLite.
type DictionaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDictionaryStore creates a DictionaryStore over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewDictionaryStore(db store.DBTX, logger *slog.Logger) *DictionaryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DictionaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "dictionary_store")),
	}
}

var _ store.DictionaryStore = (*DictionaryStore)(nil)

const dictionaryColumns = `d.id, d.language_id, d.name, d.color, d.sort_order, d.created_at`

func scanDictionary(row interface{ Scan(...any) error }, extra ...any) (*domain.Dictionary, error) {
	var (
		dict  domain.Dictionary
		color sql.NullString
	)
	dest := append([]any{
		&dict.ID, &dict.LanguageID, &dict.Name, &color, &dict.SortOrder, timestamp{&dict.CreatedAt},
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	dict.Color = stringPtr(color)
	return &dict, nil
}

// Create implements store.DictionaryStore.Create.
func (s *DictionaryStore) Create(ctx context.Context, in domain.DictionaryInput) (*domain.Dictionary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO dictionaries (language_id, name, color, sort_order) VALUES (?, ?, ?, ?)`,
		in.LanguageID, strings.TrimSpace(in.Name), nullString(domain.NullIfBlank(in.Color)), in.SortOrder)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("dictionary references missing language",
				slog.Int64("language_id", in.LanguageID))
			return nil, fmt.Errorf("%w: language with ID %d not found",
				store.ErrInvalidEntity, in.LanguageID)
		}
		log.Error("failed to create dictionary", slog.String("error", err.Error()))
		return nil, store.NewStoreError("dictionary", "create", nil, MapError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	log.Info("dictionary created",
		slog.Int64("dictionary_id", id),
		slog.Int64("language_id", in.LanguageID))
	return s.GetByID(ctx, id)
}

// GetByID implements store.DictionaryStore.GetByID.
func (s *DictionaryStore) GetByID(ctx context.Context, id int64) (*domain.Dictionary, error) {
	dict, err := scanDictionary(s.db.QueryRowContext(ctx,
		`SELECT `+dictionaryColumns+` FROM dictionaries d WHERE d.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrDictionaryNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return dict, nil
}

// ListByLanguage implements store.DictionaryStore.ListByLanguage.
func (s *DictionaryStore) ListByLanguage(ctx context.Context, languageID int64) ([]domain.DictionarySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+dictionaryColumns+`, COUNT(c.id) AS cards_count
		FROM dictionaries d
		LEFT JOIN cards c ON c.dictionary_id = d.id
		WHERE d.language_id = ?
		GROUP BY d.id
		ORDER BY d.sort_order, d.name COLLATE `+CollationNoCase+`, d.id
	`, languageID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.DictionarySummary
	for rows.Next() {
		var count int
		dict, err := scanDictionary(rows, &count)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DictionarySummary{Dictionary: *dict, CardsCount: count})
	}
	return out, rows.Err()
}

// Update implements store.DictionaryStore.Update.
func (s *DictionaryStore) Update(ctx context.Context, id int64, patch domain.DictionaryPatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return err
	}

	var name sql.NullString
	if patch.Name != nil {
		name = sql.NullString{String: strings.TrimSpace(*patch.Name), Valid: true}
	}
	var sortOrder sql.NullInt64
	if patch.SortOrder != nil {
		sortOrder = sql.NullInt64{Int64: int64(*patch.SortOrder), Valid: true}
	}
	// An explicit blank color clears it; a nil color leaves it untouched.
	clearColor := patch.Color != nil && domain.NullIfBlank(patch.Color) == nil

	res, err := s.db.ExecContext(ctx, `
		UPDATE dictionaries
		SET name = COALESCE(?, name),
		    color = CASE WHEN ? THEN NULL ELSE COALESCE(?, color) END,
		    sort_order = COALESCE(?, sort_order)
		WHERE id = ?
	`, name, clearColor, nullString(domain.NullIfBlank(patch.Color)), sortOrder, id)
	if err != nil {
		log.Error("failed to update dictionary", slog.String("error", err.Error()))
		return store.NewStoreError("dictionary", "update", store.ErrUpdateFailed, MapError(err))
	}
	if err := CheckRowsAffected(res, store.ErrDictionaryNotFound); err != nil {
		return err
	}

	log.Info("dictionary updated", slog.Int64("dictionary_id", id))
	return nil
}

// Delete implements store.DictionaryStore.Delete.
func (s *DictionaryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `DELETE FROM dictionaries WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete dictionary", slog.String("error", err.Error()))
		return store.NewStoreError("dictionary", "delete", store.ErrDeleteFailed, MapError(err))
	}
	if err := CheckRowsAffected(res, store.ErrDictionaryNotFound); err != nil {
		return err
	}

	log.Info("dictionary deleted", slog.Int64("dictionary_id", id))
	return nil
}

// FirstOrCreateDefault implements store.DictionaryStore.FirstOrCreateDefault.
func (s *DictionaryStore) FirstOrCreateDefault(ctx context.Context, languageID int64) (*domain.Dictionary, error) {
	dict, err := scanDictionary(s.db.QueryRowContext(ctx, `
		SELECT `+dictionaryColumns+` FROM dictionaries d
		WHERE d.language_id = ?
		ORDER BY d.name = ? DESC, d.sort_order, d.id
		LIMIT 1
	`, languageID, domain.DefaultDictionaryName))
	if err == nil {
		return dict, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, MapError(err)
	}

	return s.Create(ctx, domain.DictionaryInput{
		LanguageID: languageID,
		Name:       domain.DefaultDictionaryName,
	})
}

// MoveAllCards implements store.DictionaryStore.MoveAllCards.
func (s *DictionaryStore) MoveAllCards(ctx context.Context, sourceID, targetID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx,
		`UPDATE cards SET dictionary_id = ? WHERE dictionary_id = ?`, targetID, sourceID)
	if err != nil {
		log.Error("failed to move cards",
			slog.String("error", err.Error()),
			slog.Int64("source_id", sourceID),
			slog.Int64("target_id", targetID))
		return 0, store.NewStoreError("dictionary", "move", store.ErrUpdateFailed, MapError(err))
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Info("cards moved between dictionaries",
		slog.Int64("source_id", sourceID),
		slog.Int64("target_id", targetID),
		slog.Int64("cards", moved))
	return moved, nil
}

// WithTx implements store.DictionaryStore.WithTx.
func (s *DictionaryStore) WithTx(tx *sql.Tx) store.DictionaryStore {
	return &DictionaryStore{db: tx, logger: s.logger}
}
