package card_review

import (
	"context"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/samber/lo"
)

// Browse walks the weak cards of a dictionary for self-assessment. Only Know
// and DontKnow change ratings. When the list is exhausted it is loaded again,
// so cards reappear while they stay below known.
type Browse struct {
	DictionaryID int64

	svc   *cardReviewServiceImpl
	queue []domain.Card
	index int
}

// Current returns the card under review, or nil when no weak cards exist.
func (b *Browse) Current() *domain.Card {
	if b.index >= len(b.queue) {
		return nil
	}
	return &b.queue[b.index]
}

// Remaining returns how many cards are left before the list reloads,
// including the current one.
func (b *Browse) Remaining() int {
	return max(len(b.queue)-b.index, 0)
}

// Know raises the current card's rating and moves on.
func (b *Browse) Know(ctx context.Context) (domain.Rating, error) {
	return b.assess(ctx, domain.ReviewOutcomeKnown)
}

// DontKnow lowers the current card's rating and moves on.
func (b *Browse) DontKnow(ctx context.Context) (domain.Rating, error) {
	return b.assess(ctx, domain.ReviewOutcomeUnknown)
}

// Skip moves on without touching the rating.
func (b *Browse) Skip(ctx context.Context) error {
	if b.Current() == nil {
		return ErrNoCards
	}
	return b.advance(ctx)
}

func (b *Browse) assess(ctx context.Context, outcome domain.ReviewOutcome) (domain.Rating, error) {
	card := b.Current()
	if card == nil {
		return 0, ErrNoCards
	}
	rating, err := b.svc.applyOutcome(ctx, card.ID, outcome)
	if err != nil {
		return 0, NewServiceError("repetition", "failed to update rating", err)
	}
	card.Rating = rating
	return rating, b.advance(ctx)
}

func (b *Browse) advance(ctx context.Context) error {
	b.index++
	if b.index < len(b.queue) {
		return nil
	}
	return b.reload(ctx)
}

// reload fetches the weak cards again and shuffles each rating tier,
// keeping weaker tiers first.
func (b *Browse) reload(ctx context.Context) error {
	cards, err := b.svc.cardRepo.ListWeak(ctx, b.DictionaryID, domain.RatingKnown)
	if err != nil {
		return NewServiceError("repetition", "failed to load weak cards", err)
	}

	tiers := lo.PartitionBy(cards, func(c domain.Card) domain.Rating { return c.Rating })
	for _, tier := range tiers {
		shuffle(b.svc.rand, tier)
	}
	b.queue = lo.Flatten(tiers)
	b.index = 0
	return nil
}
