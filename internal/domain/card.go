package domain

import (
	"strings"
	"time"
)

// Card is a single vocabulary entry. It belongs to exactly one Dictionary and
// owns zero or more Examples.
type Card struct {
	ID            int64     `json:"id"`
	Word          string    `json:"word"`
	Translation   string    `json:"translation"`
	Transcription *string   `json:"transcription,omitempty"`
	Explanation   *string   `json:"explanation,omitempty"`
	Rating        Rating    `json:"rating"`
	DictionaryID  int64     `json:"dictionary_id"`
	CreatedAt     time.Time `json:"created_at"`
	Examples      []Example `json:"examples,omitempty"`
}

// Example is a usage sentence attached to a Card.
type Example struct {
	ID       int64  `json:"id"`
	CardID   int64  `json:"card_id"`
	Sentence string `json:"sentence"`
}

// Sentences returns the example sentences in order.
func (c *Card) Sentences() []string {
	out := make([]string, 0, len(c.Examples))
	for _, ex := range c.Examples {
		out = append(out, ex.Sentence)
	}
	return out
}

// CardInput carries the writable fields of a Card. Examples is always the
// complete desired example list; updates replace the stored set wholesale.
type CardInput struct {
	Word          string
	Translation   string
	Transcription *string
	Explanation   *string
	Examples      []string
	Rating        int
}

// Validate checks the invariants a card must satisfy before it is persisted.
// The rating is not validated: it is clamped on write.
func (in CardInput) Validate() error {
	if strings.TrimSpace(in.Word) == "" {
		return NewValidationError("word", ErrWordEmpty)
	}
	if strings.TrimSpace(in.Translation) == "" {
		return NewValidationError("translation", ErrTranslationEmpty)
	}
	return nil
}

// Normalize returns a copy with trimmed text, blank optionals turned into nil,
// empty examples dropped and the rating clamped.
func (in CardInput) Normalize() CardInput {
	examples := make([]string, 0, len(in.Examples))
	for _, ex := range in.Examples {
		if ex = strings.TrimSpace(ex); ex != "" {
			examples = append(examples, ex)
		}
	}
	return CardInput{
		Word:          strings.TrimSpace(in.Word),
		Translation:   strings.TrimSpace(in.Translation),
		Transcription: NullIfBlank(in.Transcription),
		Explanation:   NullIfBlank(in.Explanation),
		Examples:      examples,
		Rating:        int(ClampRating(in.Rating)),
	}
}
