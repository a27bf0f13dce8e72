package domain

import "fmt"

// Rating tracks how well a card is known.
type Rating int

// Valid ratings. Every write clamps into [RatingUnknown, RatingKnown].
const (
	RatingUnknown Rating = 0
	RatingWeak    Rating = 1
	RatingKnown   Rating = 2
)

// ClampRating forces v into the valid rating range.
func ClampRating(v int) Rating {
	switch {
	case v < int(RatingUnknown):
		return RatingUnknown
	case v > int(RatingKnown):
		return RatingKnown
	default:
		return Rating(v)
	}
}

func (r Rating) String() string {
	switch r {
	case RatingUnknown:
		return "unknown"
	case RatingWeak:
		return "weak"
	case RatingKnown:
		return "known"
	default:
		return fmt.Sprintf("rating(%d)", int(r))
	}
}

// ReviewOutcome is the result of a single self-assessment or quiz answer.
type ReviewOutcome string

// Valid review outcomes.
const (
	ReviewOutcomeKnown   ReviewOutcome = "known"
	ReviewOutcomeUnknown ReviewOutcome = "unknown"
)

// Valid reports whether o is a known outcome.
func (o ReviewOutcome) Valid() bool {
	return o == ReviewOutcomeKnown || o == ReviewOutcomeUnknown
}

// OutcomeFor maps a quiz answer correctness to an outcome.
func OutcomeFor(correct bool) ReviewOutcome {
	if correct {
		return ReviewOutcomeKnown
	}
	return ReviewOutcomeUnknown
}
