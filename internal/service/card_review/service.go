package card_review

import (
	"context"
	"errors"
	"fmt"
)

// Quiz requirements.
const (
	// MinQuizCards is the smallest dictionary a quiz can run on.
	MinQuizCards = 5
	// MinDistinctTranslations is the number of different non-empty
	// translations needed to build one correct and four wrong options.
	MinDistinctTranslations = 5
	// WrongOptions is the number of distractors shown with each question.
	WrongOptions = 4
)

// Eligibility describes whether a dictionary can be quizzed.
type Eligibility struct {
	Cards                int  `json:"cards"`
	DistinctTranslations int  `json:"distinct_translations"`
	Eligible             bool `json:"eligible"`
}

// CardReviewService drives quizzes and repetition over a dictionary.
type CardReviewService interface {
	// CheckEligibility counts the cards and distinct trimmed translations of
	// the dictionary. A quiz needs at least MinQuizCards cards and
	// MinDistinctTranslations distinct translations.
	CheckEligibility(ctx context.Context, dictionaryID int64) (*Eligibility, error)

	// StartQuiz shuffles every card of the dictionary into a new session and
	// prepares the first question.
	//
	// Returns:
	//   - (*Session, nil): a session in the ready state
	//   - (nil, ErrInsufficientData): the dictionary is not eligible
	//   - (nil, error): any storage failure
	StartQuiz(ctx context.Context, dictionaryID int64) (*Session, error)

	// StartRepetition loads the weak cards (rating below known) of the
	// dictionary, weakest first and shuffled within each rating.
	StartRepetition(ctx context.Context, dictionaryID int64) (*Browse, error)
}

// Common error types for CardReviewService
var (
	// ErrInsufficientData indicates the dictionary does not qualify for a quiz.
	ErrInsufficientData = errors.New("not enough cards or distinct translations for a quiz")

	// ErrAlreadyAnswered indicates the current question was already answered.
	// The first answer to a question is final.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrNotAnswered indicates an attempt to advance past an unanswered question.
	ErrNotAnswered = errors.New("current question has not been answered")

	// ErrNoQuestion indicates there is no answerable question: the session is
	// completed, or the current card has no option set.
	ErrNoQuestion = errors.New("no question to answer")

	// ErrNoCards indicates a repetition action with no current card.
	ErrNoCards = errors.New("no weak cards to review")
)

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_quiz", "answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
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

// NewServiceError returns a new ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
