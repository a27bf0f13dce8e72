package card_review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
)

// State is the lifecycle state of a quiz session.
type State string

const (
	// StateReady means the session has a current card.
	StateReady State = "ready"
	// StateCompleted means every card of the pool has been visited.
	StateCompleted State = "completed"
)

// Question is the quiz prompt for one card.
type Question struct {
	Card domain.Card
	// Correct is the card's trimmed translation.
	Correct string
	// Options holds the correct answer and WrongOptions distractors in random
	// order. It is nil when no option set could be built; such a card is
	// skipped with Next.
	Options []string

	answered bool
	selected string
}

// Skipped reports whether the question has no option set.
func (q *Question) Skipped() bool { return q.Options == nil }

// Answered reports whether an answer has been recorded.
func (q *Question) Answered() bool { return q.answered }

// Selected returns the recorded answer.
func (q *Question) Selected() string { return q.selected }

// AnswerResult is the outcome of answering a question.
type AnswerResult struct {
	Correct  bool
	Expected string
	Rating   domain.Rating
}

// Session is one pass of a multiple-choice quiz over a dictionary. A Session
// is not safe for concurrent use.
type Session struct {
	ID           uuid.UUID
	DictionaryID int64

	svc       *cardReviewServiceImpl
	pool      []domain.Card
	index     int
	current   *Question
	state     State
	correct   int
	incorrect int
}

// State returns the session state.
func (s *Session) State() State { return s.state }

// Current returns the current question, or nil once completed.
func (s *Session) Current() *Question { return s.current }

// Position returns the one-based index of the current card and the pool size.
func (s *Session) Position() (int, int) { return s.index + 1, len(s.pool) }

// Score returns the correct and incorrect tallies.
func (s *Session) Score() (correct, incorrect int) { return s.correct, s.incorrect }

// Restart checks eligibility again and starts over with a freshly shuffled
// pool and zeroed tallies.
func (s *Session) Restart(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.svc.logger)

	cards, err := s.svc.cardRepo.ListByDictionary(ctx, s.DictionaryID, 0, 0)
	if err != nil {
		return NewServiceError("start_quiz", "failed to load cards", err)
	}
	if e := eligibilityOf(cards); !e.Eligible {
		log.Debug("dictionary not eligible for quiz",
			slog.Int64("dictionary_id", s.DictionaryID),
			slog.Int("cards", e.Cards),
			slog.Int("distinct_translations", e.DistinctTranslations))
		return ErrInsufficientData
	}

	shuffle(s.svc.rand, cards)
	s.ID = uuid.New()
	s.pool = cards
	s.index = 0
	s.correct, s.incorrect = 0, 0
	s.state = StateReady
	if err := s.prepare(ctx); err != nil {
		return err
	}

	log.Info("quiz started",
		slog.String("session_id", s.ID.String()),
		slog.Int64("dictionary_id", s.DictionaryID),
		slog.Int("cards", len(cards)))
	return nil
}

// prepare builds the question for pool[index].
func (s *Session) prepare(ctx context.Context) error {
	card := s.pool[s.index]
	q := &Question{Card: card, Correct: strings.TrimSpace(card.Translation)}
	if q.Correct != "" {
		opts, err := s.options(ctx, card, q.Correct)
		if err != nil {
			return NewServiceError("prepare_question", "failed to load options", err)
		}
		q.Options = opts
	}
	s.current = q
	return nil
}

// options assembles WrongOptions distinct distractors, first from the store
// and then from the session pool, and shuffles them with the correct answer.
// It returns nil if not enough distractors exist.
func (s *Session) options(ctx context.Context, card domain.Card, correct string) ([]string, error) {
	fetched, err := s.svc.cardRepo.RandomTranslations(ctx, s.DictionaryID, card.ID, WrongOptions)
	if err != nil {
		return nil, err
	}

	wrong := make([]string, 0, WrongOptions)
	seen := map[string]struct{}{correct: {}}
	add := func(tr string) {
		tr = strings.TrimSpace(tr)
		if _, dup := seen[tr]; dup || tr == "" || len(wrong) == WrongOptions {
			return
		}
		seen[tr] = struct{}{}
		wrong = append(wrong, tr)
	}

	for _, tr := range fetched {
		add(tr)
	}
	if len(wrong) < WrongOptions {
		backfill := make([]domain.Card, len(s.pool))
		copy(backfill, s.pool)
		shuffle(s.svc.rand, backfill)
		for _, c := range backfill {
			if c.ID != card.ID {
				add(c.Translation)
			}
		}
	}
	if len(wrong) < WrongOptions {
		return nil, nil
	}

	opts := append(wrong, correct)
	shuffle(s.svc.rand, opts)
	return opts, nil
}

// Answer records the answer to the current question and updates the card
// rating: up one if option matches the correct translation, down one
// otherwise. The first answer is final.
func (s *Session) Answer(ctx context.Context, option string) (*AnswerResult, error) {
	q := s.current
	if s.state != StateReady || q == nil || q.Skipped() {
		return nil, ErrNoQuestion
	}
	if q.answered {
		return nil, ErrAlreadyAnswered
	}

	option = strings.TrimSpace(option)
	correct := option == q.Correct
	rating, err := s.svc.applyOutcome(ctx, q.Card.ID, domain.OutcomeFor(correct))
	if err != nil {
		return nil, NewServiceError("answer", "failed to update rating", err)
	}

	q.answered = true
	q.selected = option
	q.Card.Rating = rating
	if correct {
		s.correct++
	} else {
		s.incorrect++
	}
	return &AnswerResult{Correct: correct, Expected: q.Correct, Rating: rating}, nil
}

// Next advances to the following card. A question with options must be
// answered first; a skipped question may be passed over. Advancing past the
// last card completes the session.
func (s *Session) Next(ctx context.Context) error {
	if s.state != StateReady || s.current == nil {
		return ErrNoQuestion
	}
	if !s.current.Skipped() && !s.current.answered {
		return ErrNotAnswered
	}

	s.index++
	if s.index >= len(s.pool) {
		s.index = len(s.pool) - 1
		s.current = nil
		s.state = StateCompleted
		logger.FromContextOrDefault(ctx, s.svc.logger).Info("quiz completed",
			slog.String("session_id", s.ID.String()),
			slog.Int("correct", s.correct),
			slog.Int("incorrect", s.incorrect))
		return nil
	}
	return s.prepare(ctx)
}
