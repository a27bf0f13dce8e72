package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/store"
)

// LanguageStore implements store.LanguageStore on SQLite.
type LanguageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLanguageStore creates a LanguageStore over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewLanguageStore(db store.DBTX, logger *slog.Logger) *LanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageStore{
		db:     db,
		logger: logger.With(slog.String("component", "language_store")),
	}
}

var _ store.LanguageStore = (*LanguageStore)(nil)

const languageColumns = `id, name, code, icon, created_at`

func scanLanguage(row interface{ Scan(...any) error }) (*domain.Language, error) {
	var (
		lang       domain.Language
		code, icon sql.NullString
	)
	if err := row.Scan(&lang.ID, &lang.Name, &code, &icon, timestamp{&lang.CreatedAt}); err != nil {
		return nil, err
	}
	lang.Code = stringPtr(code)
	lang.Icon = stringPtr(icon)
	return &lang, nil
}

// Create implements store.LanguageStore.Create.
func (s *LanguageStore) Create(ctx context.Context, in domain.LanguageInput) (*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.Normalize()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO languages (name, code, icon) VALUES (?, ?, ?)`,
		in.Name, nullString(in.Code), nullString(in.Icon))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("language name already exists", slog.String("name", in.Name))
			return nil, fmt.Errorf("%w: %s", store.ErrLanguageExists, in.Name)
		}
		log.Error("failed to create language", slog.String("error", err.Error()))
		return nil, store.NewStoreError("language", "create", nil, MapError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	log.Info("language created", slog.Int64("language_id", id), slog.String("name", in.Name))
	return s.GetByID(ctx, id)
}

// GetByID implements store.LanguageStore.GetByID.
func (s *LanguageStore) GetByID(ctx context.Context, id int64) (*domain.Language, error) {
	lang, err := scanLanguage(s.db.QueryRowContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrLanguageNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get language",
			slog.String("error", err.Error()),
			slog.Int64("language_id", id))
		return nil, MapError(err)
	}
	return lang, nil
}

// List implements store.LanguageStore.List.
func (s *LanguageStore) List(ctx context.Context) ([]domain.Language, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+languageColumns+` FROM languages ORDER BY name COLLATE `+CollationNoCase+`, id`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Language
	for rows.Next() {
		lang, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lang)
	}
	return out, rows.Err()
}

// Update implements store.LanguageStore.Update.
func (s *LanguageStore) Update(ctx context.Context, id int64, in domain.LanguageInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		return err
	}
	in = in.Normalize()

	res, err := s.db.ExecContext(ctx,
		`UPDATE languages SET name = ?, code = ?, icon = ? WHERE id = ?`,
		in.Name, nullString(in.Code), nullString(in.Icon), id)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrLanguageExists, in.Name)
		}
		log.Error("failed to update language", slog.String("error", err.Error()))
		return store.NewStoreError("language", "update", store.ErrUpdateFailed, MapError(err))
	}
	if err := CheckRowsAffected(res, store.ErrLanguageNotFound); err != nil {
		return err
	}

	log.Info("language updated", slog.Int64("language_id", id))
	return nil
}

// Delete implements store.LanguageStore.Delete.
func (s *LanguageStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `DELETE FROM languages WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete language", slog.String("error", err.Error()))
		return store.NewStoreError("language", "delete", store.ErrDeleteFailed, MapError(err))
	}
	if err := CheckRowsAffected(res, store.ErrLanguageNotFound); err != nil {
		return err
	}

	log.Info("language deleted", slog.Int64("language_id", id))
	return nil
}

// FirstOrCreateDefault implements store.LanguageStore.FirstOrCreateDefault.
func (s *LanguageStore) FirstOrCreateDefault(ctx context.Context) (*domain.Language, error) {
	lang, err := scanLanguage(s.db.QueryRowContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE name = ? OR code = ? ORDER BY id LIMIT 1`,
		domain.DefaultLanguageName, domain.DefaultLanguageCode))
	if err == nil {
		return lang, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, MapError(err)
	}

	return s.Create(ctx, domain.LanguageInput{
		Name: domain.DefaultLanguageName,
		Code: domain.StringPtr(domain.DefaultLanguageCode),
	})
}

// WithTx implements store.LanguageStore.WithTx.
func (s *LanguageStore) WithTx(tx *sql.Tx) store.LanguageStore {
	return &LanguageStore{db: tx, logger: s.logger}
}
