package srs

import (
	"errors"

	"github.com/phrazzld/vocabcards/internal/domain"
)

// Common errors
var (
	ErrInvalidOutcome = errors.New("invalid review outcome")
)

// Service computes rating transitions for review outcomes.
type Service interface {
	// Delta returns the signed step applied for outcome. Stores add it to
	// the current rating in a single statement, clamped into Bounds.
	Delta(outcome domain.ReviewOutcome) (int, error)

	// Bounds returns the inclusive rating limits.
	Bounds() (domain.Rating, domain.Rating)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

func (s *defaultService) Delta(outcome domain.ReviewOutcome) (int, error) {
	if !outcome.Valid() {
		return 0, ErrInvalidOutcome
	}
	return s.params.RatingAdjustment[outcome], nil
}

func (s *defaultService) Bounds() (domain.Rating, domain.Rating) {
	return s.params.MinRating, s.params.MaxRating
}
