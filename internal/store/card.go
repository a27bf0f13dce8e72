package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/vocabcards/internal/domain"
)

// Direction selects a neighbouring card when browsing a dictionary by id.
type Direction int

const (
	DirectionFirst Direction = iota
	DirectionLast
	DirectionNext
	DirectionPrev
)

// CardStore defines the interface for card data persistence.
//
// Word comparisons (search, existence checks) are case-insensitive across
// the full Unicode range; stored text keeps its original case.
type CardStore interface {
	// Create inserts the card and each of its examples atomically and returns
	// the new card id. The input must already satisfy domain validation; the
	// rating is clamped into [0,2]. Returns store.ErrInvalidEntity when the
	// dictionary does not exist.
	Create(ctx context.Context, dictionaryID int64, in domain.CardInput) (int64, error)

	// Update replaces the card's scalar fields and its entire example set.
	// Passing an empty Examples slice removes every stored example.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, id int64, in domain.CardInput) error

	// Delete removes the card's examples and then the card, atomically.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// MoveToDictionary reassigns a card. The target is validated only by the
	// storage foreign key, surfaced as ErrInvalidEntity.
	MoveToDictionary(ctx context.Context, id, dictionaryID int64) error

	// GetByID returns the card with its examples.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Card, error)

	// Search returns cards whose word or translation contains query,
	// case-insensitively, optionally restricted to one dictionary.
	// A non-positive limit returns all matches.
	Search(ctx context.Context, query string, dictionaryID *int64, limit, offset int) ([]domain.Card, error)

	// ListByDictionary returns one page of cards ordered by id, without examples.
	// A non-positive limit returns all cards.
	ListByDictionary(ctx context.Context, dictionaryID int64, limit, offset int) ([]domain.Card, error)

	// ListAllWithExamples returns every card of the dictionary ordered by id
	// with examples attached, using one query for cards and one for examples.
	ListAllWithExamples(ctx context.Context, dictionaryID int64) ([]domain.Card, error)

	// ExistsInDictionary reports whether a card with the same word exists.
	ExistsInDictionary(ctx context.Context, word string, dictionaryID int64) (bool, error)

	// ExistsByWordAndTranslation reports whether a card with the same word and
	// translation exists.
	ExistsByWordAndTranslation(ctx context.Context, word, translation string, dictionaryID int64) (bool, error)

	// AdjustRating adds delta to the card rating in a single statement,
	// clamping into [lo, hi], and returns the stored result.
	AdjustRating(ctx context.Context, id int64, delta int, lo, hi domain.Rating) (domain.Rating, error)

	// SetRating stores a rating, clamped into [0,2].
	SetRating(ctx context.Context, id int64, rating int) error

	// ListWeak returns cards of the dictionary rated below the threshold,
	// weakest first and by id within a rating.
	ListWeak(ctx context.Context, dictionaryID int64, below domain.Rating) ([]domain.Card, error)

	// RandomTranslations returns up to limit distinct translations of other
	// cards in the dictionary, in random order.
	RandomTranslations(ctx context.Context, dictionaryID, excludeCardID int64, limit int) ([]string, error)

	// CountByDictionary returns the number of cards in the dictionary.
	CountByDictionary(ctx context.Context, dictionaryID int64) (int, error)

	// Navigate returns the first, last, next or previous card of the
	// dictionary by id. fromID is ignored for DirectionFirst and DirectionLast.
	// Returns ErrCardNotFound when there is no such card.
	Navigate(ctx context.Context, dictionaryID, fromID int64, dir Direction) (*domain.Card, error)

	// WithTx returns a CardStore that runs every statement in tx.
	WithTx(tx *sql.Tx) CardStore
}
