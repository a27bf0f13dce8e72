package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/store"
)

// CardService provides card-related operations. Unlike the store it trims
// input before validating it, which is what user-facing callers want.
type CardService interface {
	CreateCard(ctx context.Context, dictionaryID int64, in domain.CardInput) (*domain.Card, error)
	// UpdateCard replaces all fields and the complete example list.
	UpdateCard(ctx context.Context, id int64, in domain.CardInput) (*domain.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	MoveCard(ctx context.Context, id, dictionaryID int64) error
	GetCard(ctx context.Context, id int64) (*domain.Card, error)
	ListCards(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error)
	CountCards(ctx context.Context, dictionaryID int64) (int, error)
	// RateCard sets the rating directly, clamped into the valid range.
	RateCard(ctx context.Context, id int64, rating int) (*domain.Card, error)
	SearchCards(ctx context.Context, query string, dictionaryID *int64, limit, offset int) ([]domain.Card, error)
	Navigate(ctx context.Context, dictionaryID, fromID int64, dir store.Direction) (*domain.Card, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cards  store.CardStore
	dicts  store.DictionaryStore
	logger *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	cards store.CardStore,
	dicts store.DictionaryStore,
	logger *slog.Logger,
) (CardService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", errors.New("cannot be nil"))
	}
	if dicts == nil {
		return nil, domain.NewValidationError("dicts", errors.New("cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cards:  cards,
		dicts:  dicts,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	dictionaryID int64,
	in domain.CardInput,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.dicts.GetByID(ctx, dictionaryID); err != nil {
		return nil, err
	}

	id, err := s.cards.Create(ctx, dictionaryID, in)
	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.Int64("dictionary_id", dictionaryID))
		return nil, NewCardServiceError("create_card", "failed to save card", err)
	}

	log.Info("card created", slog.Int64("card_id", id), slog.String("word", in.Word))
	return s.cards.GetByID(ctx, id)
}

func (s *cardServiceImpl) UpdateCard(ctx context.Context, id int64, in domain.CardInput) (*domain.Card, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.cards.Update(ctx, id, in); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewCardServiceError("update_card", "failed to save card", err)
	}
	return s.cards.GetByID(ctx, id)
}

func (s *cardServiceImpl) DeleteCard(ctx context.Context, id int64) error {
	if err := s.cards.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}
	return nil
}

func (s *cardServiceImpl) MoveCard(ctx context.Context, id, dictionaryID int64) error {
	if _, err := s.dicts.GetByID(ctx, dictionaryID); err != nil {
		return err
	}
	return s.cards.MoveToDictionary(ctx, id, dictionaryID)
}

func (s *cardServiceImpl) GetCard(ctx context.Context, id int64) (*domain.Card, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *cardServiceImpl) ListCards(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error) {
	return s.cards.ListByDictionary(ctx, dictionaryID, limit, offset)
}

func (s *cardServiceImpl) CountCards(ctx context.Context, dictionaryID int64) (int, error) {
	return s.cards.CountByDictionary(ctx, dictionaryID)
}

func (s *cardServiceImpl) RateCard(ctx context.Context, id int64, rating int) (*domain.Card, error) {
	if err := s.cards.SetRating(ctx, id, rating); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewCardServiceError("rate_card", "failed to save rating", err)
	}
	return s.cards.GetByID(ctx, id)
}

func (s *cardServiceImpl) SearchCards(
	ctx context.Context,
	query string,
	dictionaryID *int64,
	limit, offset int,
) ([]domain.Card, error) {
	return s.cards.Search(ctx, query, dictionaryID, limit, offset)
}

func (s *cardServiceImpl) Navigate(
	ctx context.Context,
	dictionaryID, fromID int64,
	dir store.Direction,
) (*domain.Card, error) {
	return s.cards.Navigate(ctx, dictionaryID, fromID, dir)
}
