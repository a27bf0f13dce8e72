package srs

import (
	"github.com/phrazzld/vocabcards/internal/domain"
)

// Params defines the configurable parameters of the rating transitions.
type Params struct {
	// Core limits
	MinRating domain.Rating
	MaxRating domain.Rating

	// Step applied to the current rating for each outcome
	RatingAdjustment map[domain.ReviewOutcome]int
}

// NewDefaultParams creates a new Params instance with default values:
// a known answer moves the rating up one step, an unknown answer moves it
// down one step, within [RatingUnknown, RatingKnown].
func NewDefaultParams() *Params {
	return &Params{
		MinRating: domain.RatingUnknown,
		MaxRating: domain.RatingKnown,
		RatingAdjustment: map[domain.ReviewOutcome]int{
			domain.ReviewOutcomeKnown:   1,
			domain.ReviewOutcomeUnknown: -1,
		},
	}
}
