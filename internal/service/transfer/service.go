package transfer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/store"
)

// AnalyzeReport describes what an import would do without writing anything.
type AnalyzeReport struct {
	// Total is the number of rows with a word and a translation.
	Total      int `json:"total"`
	ToAdd      int `json:"to_add"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
}

// ApplyReport describes the outcome of an import.
type ApplyReport struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Invalid int `json:"invalid"`
}

// ServiceError wraps failures of the transfer service with the failing
// operation.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Service imports and exports the cards of a dictionary.
type Service struct {
	db     store.TxBeginner
	cards  store.CardStore
	dicts  store.DictionaryStore
	logger *slog.Logger
}

// NewService creates a new transfer Service.
func NewService(
	db store.TxBeginner,
	cards store.CardStore,
	dicts store.DictionaryStore,
	logger *slog.Logger,
) (*Service, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", errors.New("cannot be nil"))
	}
	if cards == nil {
		return nil, domain.NewValidationError("cards", errors.New("cannot be nil"))
	}
	if dicts == nil {
		return nil, domain.NewValidationError("dicts", errors.New("cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		db:     db,
		cards:  cards,
		dicts:  dicts,
		logger: logger.With(slog.String("component", "transfer_service")),
	}, nil
}

// importPlan is the shared outcome of parsing and deduplication.
type importPlan struct {
	doc        Document
	toAdd      []Row
	duplicates int
}

// plan decides, for every valid row of doc, whether it would be inserted.
// A row is a duplicate if a matching card already exists in the dictionary or
// an earlier row of the same text has the same key.
func plan(
	ctx context.Context,
	cards store.CardStore,
	dictionaryID int64,
	doc Document,
	mode domain.DedupMode,
) (*importPlan, error) {
	p := &importPlan{doc: doc}
	seen := make(map[string]struct{}, len(doc.Rows))

	for _, row := range doc.Rows {
		key := dedupKey(row.Card, mode)
		if _, dup := seen[key]; dup {
			p.duplicates++
			continue
		}
		seen[key] = struct{}{}

		var (
			exists bool
			err    error
		)
		switch mode {
		case domain.DedupByWord:
			exists, err = cards.ExistsInDictionary(ctx, row.Card.Word, dictionaryID)
		case domain.DedupByWordAndTranslation:
			exists, err = cards.ExistsByWordAndTranslation(ctx, row.Card.Word, row.Card.Translation, dictionaryID)
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDedupMode, mode)
		}
		if err != nil {
			return nil, err
		}
		if exists {
			p.duplicates++
			continue
		}
		p.toAdd = append(p.toAdd, row)
	}
	return p, nil
}

func dedupKey(in domain.CardInput, mode domain.DedupMode) string {
	if mode == domain.DedupByWord {
		return domain.Fold(in.Word)
	}
	return domain.Fold(in.Word) + "\x00" + domain.Fold(in.Translation)
}

// Analyze reports how many rows of text would be added to and skipped from
// the dictionary, without writing.
func (s *Service) Analyze(
	ctx context.Context,
	dictionaryID int64,
	text string,
	mode domain.DedupMode,
) (*AnalyzeReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.dicts.GetByID(ctx, dictionaryID); err != nil {
		return nil, err
	}

	p, err := plan(ctx, s.cards, dictionaryID, Parse(text), mode)
	if err != nil {
		log.Error("failed to analyze import",
			slog.String("error", err.Error()),
			slog.Int64("dictionary_id", dictionaryID))
		return nil, &ServiceError{Operation: "analyze", Message: "failed to check duplicates", Err: err}
	}

	report := &AnalyzeReport{
		Total:      len(p.doc.Rows),
		ToAdd:      len(p.toAdd),
		Duplicates: p.duplicates,
		Invalid:    p.doc.Invalid,
	}
	log.Debug("import analyzed",
		slog.Int64("dictionary_id", dictionaryID),
		slog.Int("total", report.Total),
		slog.Int("to_add", report.ToAdd),
		slog.Int("duplicates", report.Duplicates),
		slog.Int("invalid", report.Invalid))
	return report, nil
}

// Apply imports text into the dictionary. All inserts run in one transaction:
// either every non-duplicate row is added or none is.
func (s *Service) Apply(
	ctx context.Context,
	dictionaryID int64,
	text string,
	mode domain.DedupMode,
) (*ApplyReport, error) {
	importID := uuid.New()
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("import_id", importID.String()),
		slog.Int64("dictionary_id", dictionaryID))

	doc := Parse(text)
	log.Debug("import parsed",
		slog.Bool("header", doc.HasHeader),
		slog.String("delimiter", string(doc.Delimiter)),
		slog.Int("rows", len(doc.Rows)),
		slog.Int("invalid", doc.Invalid))

	var report *ApplyReport
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.dicts.WithTx(tx).GetByID(ctx, dictionaryID); err != nil {
			return err
		}

		cards := s.cards.WithTx(tx)
		p, err := plan(ctx, cards, dictionaryID, doc, mode)
		if err != nil {
			return err
		}
		for _, row := range p.toAdd {
			if _, err := cards.Create(ctx, dictionaryID, row.Card); err != nil {
				return fmt.Errorf("record %d: %w", row.Record, err)
			}
		}

		report = &ApplyReport{Added: len(p.toAdd), Skipped: p.duplicates, Invalid: doc.Invalid}
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("import failed", slog.String("error", err.Error()))
		return nil, &ServiceError{Operation: "apply", Message: "failed to import cards", Err: err}
	}

	log.Info("import applied",
		slog.Int("added", report.Added),
		slog.Int("skipped", report.Skipped),
		slog.Int("invalid", report.Invalid))
	return report, nil
}
