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

// CardStore implements the store.CardStore interface on SQLite.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new SQLite implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

const cardColumns = `id, word, translation, transcription, explanation,
	COALESCE(rating, 0), dictionary_id, created_at`

func scanCard(row interface{ Scan(...any) error }) (*domain.Card, error) {
	var (
		card                       domain.Card
		transcription, explanation sql.NullString
		rating                     int
		dictionaryID               sql.NullInt64
	)
	if err := row.Scan(
		&card.ID,
		&card.Word,
		&card.Translation,
		&transcription,
		&explanation,
		&rating,
		&dictionaryID,
		timestamp{&card.CreatedAt},
	); err != nil {
		return nil, err
	}
	card.Transcription = stringPtr(transcription)
	card.Explanation = stringPtr(explanation)
	card.Rating = domain.ClampRating(rating)
	card.DictionaryID = dictionaryID.Int64
	return &card, nil
}

func (s *CardStore) queryCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func insertExamples(ctx context.Context, tx *sql.Tx, cardID int64, examples []string) error {
	for _, sentence := range examples {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO examples (card_id, sentence) VALUES (?, ?)`, cardID, sentence); err != nil {
			return MapError(err)
		}
	}
	return nil
}

// Create implements store.CardStore.Create.
// The card row and its examples are written in one transaction.
func (s *CardStore) Create(ctx context.Context, dictionaryID int64, in domain.CardInput) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		log.Warn("card validation failed during create", slog.String("error", err.Error()))
		return 0, err
	}

	var id int64
	err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO cards (word, translation, transcription, explanation, rating, dictionary_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			in.Word,
			in.Translation,
			nullString(domain.NullIfBlank(in.Transcription)),
			nullString(domain.NullIfBlank(in.Explanation)),
			int(domain.ClampRating(in.Rating)),
			dictionaryID,
		)
		if err != nil {
			return MapError(err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return insertExamples(ctx, tx, id, in.Examples)
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			log.Warn("card references missing dictionary",
				slog.Int64("dictionary_id", dictionaryID))
			return 0, fmt.Errorf("%w: dictionary with ID %d not found", store.ErrInvalidEntity, dictionaryID)
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.Int64("dictionary_id", dictionaryID))
		return 0, store.NewStoreError("card", "create", nil, err)
	}

	log.Debug("card created",
		slog.Int64("card_id", id),
		slog.Int64("dictionary_id", dictionaryID),
		slog.Int("examples", len(in.Examples)))
	return id, nil
}

// Update implements store.CardStore.Update.
// The example set is replaced wholesale: delete all, then insert the new list.
func (s *CardStore) Update(ctx context.Context, id int64, in domain.CardInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return err
	}

	err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE cards
			SET word = ?, translation = ?, transcription = ?, explanation = ?, rating = ?
			WHERE id = ?
		`,
			in.Word,
			in.Translation,
			nullString(domain.NullIfBlank(in.Transcription)),
			nullString(domain.NullIfBlank(in.Explanation)),
			int(domain.ClampRating(in.Rating)),
			id,
		)
		if err != nil {
			return MapError(err)
		}
		if err := CheckRowsAffected(res, store.ErrCardNotFound); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM examples WHERE card_id = ?`, id); err != nil {
			return MapError(err)
		}
		return insertExamples(ctx, tx, id, in.Examples)
	})
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return err
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "update", store.ErrUpdateFailed, err)
	}

	log.Debug("card updated", slog.Int64("card_id", id))
	return nil
}

// Delete implements store.CardStore.Delete.
// Examples are removed explicitly even though the foreign key cascades.
func (s *CardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM examples WHERE card_id = ?`, id); err != nil {
			return MapError(err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(res, store.ErrCardNotFound)
	})
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return err
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "delete", store.ErrDeleteFailed, err)
	}

	log.Debug("card deleted", slog.Int64("card_id", id))
	return nil
}

// MoveToDictionary implements store.CardStore.MoveToDictionary.
func (s *CardStore) MoveToDictionary(ctx context.Context, id, dictionaryID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `UPDATE cards SET dictionary_id = ? WHERE id = ?`, dictionaryID, id)
	if err != nil {
		log.Warn("failed to move card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id),
			slog.Int64("dictionary_id", dictionaryID))
		return store.NewStoreError("card", "move", store.ErrUpdateFailed, MapError(err))
	}
	if err := CheckRowsAffected(res, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Info("card moved",
		slog.Int64("card_id", id),
		slog.Int64("dictionary_id", dictionaryID))
	return nil
}

// GetByID implements store.CardStore.GetByID.
func (s *CardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, MapError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, card_id, sentence FROM examples WHERE card_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ex domain.Example
		if err := rows.Scan(&ex.ID, &ex.CardID, &ex.Sentence); err != nil {
			return nil, err
		}
		card.Examples = append(card.Examples, ex)
	}
	return card, rows.Err()
}

// Search implements store.CardStore.Search.
func (s *CardStore) Search(
	ctx context.Context,
	query string,
	dictionaryID *int64,
	limit, offset int,
) ([]domain.Card, error) {
	limit, offset = pageArgs(limit, offset)

	sqlText := `SELECT ` + cardColumns + ` FROM cards
		WHERE (instr(casefold(word), casefold(?)) > 0 OR instr(casefold(translation), casefold(?)) > 0)`
	args := []any{query, query}
	if dictionaryID != nil {
		sqlText += ` AND dictionary_id = ?`
		args = append(args, *dictionaryID)
	}
	sqlText += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return s.queryCards(ctx, sqlText, args...)
}

// ListByDictionary implements store.CardStore.ListByDictionary.
func (s *CardStore) ListByDictionary(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error) {
	limit, offset = pageArgs(limit, offset)
	return s.queryCards(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE dictionary_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		dictionaryID, limit, offset)
}

// ListAllWithExamples implements store.CardStore.ListAllWithExamples.
// Cards and examples are fetched with two queries and joined in memory.
func (s *CardStore) ListAllWithExamples(ctx context.Context, dictionaryID int64) ([]domain.Card, error) {
	cards, err := s.queryCards(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE dictionary_id = ? ORDER BY id`, dictionaryID)
	if err != nil || len(cards) == 0 {
		return cards, err
	}

	byID := make(map[int64]int, len(cards))
	for i, c := range cards {
		byID[c.ID] = i
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.card_id, e.sentence
		FROM examples e
		JOIN cards c ON c.id = e.card_id
		WHERE c.dictionary_id = ?
		ORDER BY e.id
	`, dictionaryID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ex domain.Example
		if err := rows.Scan(&ex.ID, &ex.CardID, &ex.Sentence); err != nil {
			return nil, err
		}
		if i, ok := byID[ex.CardID]; ok {
			cards[i].Examples = append(cards[i].Examples, ex)
		}
	}
	return cards, rows.Err()
}

func (s *CardStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, MapError(err)
	}
	return true, nil
}

// ExistsInDictionary implements store.CardStore.ExistsInDictionary.
func (s *CardStore) ExistsInDictionary(ctx context.Context, word string, dictionaryID int64) (bool, error) {
	return s.exists(ctx, `
		SELECT 1 FROM cards
		WHERE dictionary_id = ? AND word = ? COLLATE `+CollationNoCase+`
		LIMIT 1
	`, dictionaryID, word)
}

// ExistsByWordAndTranslation implements store.CardStore.ExistsByWordAndTranslation.
func (s *CardStore) ExistsByWordAndTranslation(
	ctx context.Context,
	word, translation string,
	dictionaryID int64,
) (bool, error) {
	return s.exists(ctx, `
		SELECT 1 FROM cards
		WHERE dictionary_id = ?
		  AND word = ? COLLATE `+CollationNoCase+`
		  AND translation = ? COLLATE `+CollationNoCase+`
		LIMIT 1
	`, dictionaryID, word, translation)
}

// AdjustRating implements store.CardStore.AdjustRating.
func (s *CardStore) AdjustRating(
	ctx context.Context,
	id int64,
	delta int,
	lo, hi domain.Rating,
) (domain.Rating, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rating int
	err := s.db.QueryRowContext(ctx, `
		UPDATE cards SET rating = MAX(?, MIN(?, COALESCE(rating, 0) + ?))
		WHERE id = ?
		RETURNING rating
	`, int(lo), int(hi), delta, id).Scan(&rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrCardNotFound
		}
		log.Error("failed to adjust rating",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return 0, store.NewStoreError("card", "rate", store.ErrUpdateFailed, MapError(err))
	}

	log.Debug("card rating adjusted",
		slog.Int64("card_id", id),
		slog.Int("delta", delta),
		slog.Int("rating", rating))
	return domain.Rating(rating), nil
}

// SetRating implements store.CardStore.SetRating.
func (s *CardStore) SetRating(ctx context.Context, id int64, rating int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cards SET rating = ? WHERE id = ?`, int(domain.ClampRating(rating)), id)
	if err != nil {
		return store.NewStoreError("card", "rate", store.ErrUpdateFailed, MapError(err))
	}
	return CheckRowsAffected(res, store.ErrCardNotFound)
}

// ListWeak implements store.CardStore.ListWeak.
func (s *CardStore) ListWeak(ctx context.Context, dictionaryID int64, below domain.Rating) ([]domain.Card, error) {
	return s.queryCards(ctx, `
		SELECT `+cardColumns+` FROM cards
		WHERE dictionary_id = ? AND COALESCE(rating, 0) < ?
		ORDER BY COALESCE(rating, 0), id
	`, dictionaryID, int(below))
}

// RandomTranslations implements store.CardStore.RandomTranslations.
func (s *CardStore) RandomTranslations(
	ctx context.Context,
	dictionaryID, excludeCardID int64,
	limit int,
) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT translation FROM (
			SELECT DISTINCT translation FROM cards
			WHERE dictionary_id = ? AND id != ? AND TRIM(translation) != ''
		)
		ORDER BY RANDOM()
		LIMIT ?
	`, dictionaryID, excludeCardID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var tr string
		if err := rows.Scan(&tr); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// CountByDictionary implements store.CardStore.CountByDictionary.
func (s *CardStore) CountByDictionary(ctx context.Context, dictionaryID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE dictionary_id = ?`, dictionaryID).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Navigate implements store.CardStore.Navigate.
func (s *CardStore) Navigate(
	ctx context.Context,
	dictionaryID, fromID int64,
	dir store.Direction,
) (*domain.Card, error) {
	var (
		query string
		args  = []any{dictionaryID}
	)
	switch dir {
	case store.DirectionFirst:
		query = `SELECT id FROM cards WHERE dictionary_id = ? ORDER BY id ASC LIMIT 1`
	case store.DirectionLast:
		query = `SELECT id FROM cards WHERE dictionary_id = ? ORDER BY id DESC LIMIT 1`
	case store.DirectionNext:
		query = `SELECT id FROM cards WHERE dictionary_id = ? AND id > ? ORDER BY id ASC LIMIT 1`
		args = append(args, fromID)
	case store.DirectionPrev:
		query = `SELECT id FROM cards WHERE dictionary_id = ? AND id < ? ORDER BY id DESC LIMIT 1`
		args = append(args, fromID)
	default:
		return nil, fmt.Errorf("unknown direction %d", dir)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, MapError(err)
	}
	return s.GetByID(ctx, id)
}

// WithTx implements store.CardStore.WithTx.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{db: tx, logger: s.logger}
}
