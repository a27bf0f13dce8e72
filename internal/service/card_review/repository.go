package card_review

import (
	"context"

	"github.com/phrazzld/vocabcards/internal/domain"
)

// CardRepository is the subset of card storage the review engine needs.
// store.CardStore satisfies it.
type CardRepository interface {
	// ListByDictionary returns one page of cards; a non-positive limit
	// returns every card.
	ListByDictionary(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error)

	// ListWeak returns cards rated below the threshold, weakest first.
	ListWeak(ctx context.Context, dictionaryID int64, below domain.Rating) ([]domain.Card, error)

	// RandomTranslations returns up to limit distinct translations of cards
	// other than excludeCardID.
	RandomTranslations(ctx context.Context, dictionaryID, excludeCardID int64, limit int) ([]string, error)

	// AdjustRating adds delta to a card rating, clamped into [lo, hi], and
	// returns the result.
	AdjustRating(ctx context.Context, id int64, delta int, lo, hi domain.Rating) (domain.Rating, error)
}
