package card_review

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/domain/srs"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/samber/lo"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// Option configures a CardReviewService.
type Option func(*cardReviewServiceImpl)

// WithRand sets the source used for shuffling pools and options. Tests pass a
// seeded generator to get a reproducible order.
func WithRand(r *rand.Rand) Option {
	return func(s *cardReviewServiceImpl) {
		s.rand = r
	}
}

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	cardRepo   CardRepository
	srsService srs.Service
	rand       *rand.Rand
	logger     *slog.Logger
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	cardRepo CardRepository,
	srsService srs.Service,
	logger *slog.Logger,
	opts ...Option,
) CardReviewService {
	// Validate inputs
	if cardRepo == nil {
		panic("cardRepo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardReviewServiceImpl{
		cardRepo:   cardRepo,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// distinctTranslations returns the distinct trimmed non-empty translations
// of cards, in first-seen order.
func distinctTranslations(cards []domain.Card) []string {
	return lo.Uniq(lo.FilterMap(cards, func(c domain.Card, _ int) (string, bool) {
		tr := strings.TrimSpace(c.Translation)
		return tr, tr != ""
	}))
}

func eligibilityOf(cards []domain.Card) *Eligibility {
	e := &Eligibility{
		Cards:                len(cards),
		DistinctTranslations: len(distinctTranslations(cards)),
	}
	e.Eligible = e.Cards >= MinQuizCards && e.DistinctTranslations >= MinDistinctTranslations
	return e
}

// CheckEligibility implements CardReviewService.CheckEligibility.
func (s *cardReviewServiceImpl) CheckEligibility(ctx context.Context, dictionaryID int64) (*Eligibility, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardRepo.ListByDictionary(ctx, dictionaryID, 0, 0)
	if err != nil {
		log.Error("failed to load cards for eligibility",
			slog.String("error", err.Error()),
			slog.Int64("dictionary_id", dictionaryID))
		return nil, NewServiceError("check_eligibility", "failed to load cards", err)
	}

	e := eligibilityOf(cards)
	log.Debug("quiz eligibility checked",
		slog.Int64("dictionary_id", dictionaryID),
		slog.Int("cards", e.Cards),
		slog.Int("distinct_translations", e.DistinctTranslations),
		slog.Bool("eligible", e.Eligible))
	return e, nil
}

// StartQuiz implements CardReviewService.StartQuiz.
func (s *cardReviewServiceImpl) StartQuiz(ctx context.Context, dictionaryID int64) (*Session, error) {
	sess := &Session{DictionaryID: dictionaryID, svc: s}
	if err := sess.Restart(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// StartRepetition implements CardReviewService.StartRepetition.
func (s *cardReviewServiceImpl) StartRepetition(ctx context.Context, dictionaryID int64) (*Browse, error) {
	b := &Browse{DictionaryID: dictionaryID, svc: s}
	if err := b.reload(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// applyOutcome records a review outcome against the stored rating.
func (s *cardReviewServiceImpl) applyOutcome(
	ctx context.Context,
	cardID int64,
	outcome domain.ReviewOutcome,
) (domain.Rating, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	delta, err := s.srsService.Delta(outcome)
	if err != nil {
		return 0, err
	}
	floor, ceiling := s.srsService.Bounds()
	rating, err := s.cardRepo.AdjustRating(ctx, cardID, delta, floor, ceiling)
	if err != nil {
		log.Error("failed to update rating",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID),
			slog.String("outcome", string(outcome)))
		return 0, err
	}

	log.Debug("rating updated",
		slog.Int64("card_id", cardID),
		slog.String("outcome", string(outcome)),
		slog.Int("rating", int(rating)))
	return rating, nil
}

func shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
