package domain

import (
	"strings"
	"time"
)

// Dictionary is a named collection of cards scoped to exactly one Language.
type Dictionary struct {
	ID         int64     `json:"id"`
	LanguageID int64     `json:"language_id"`
	Name       string    `json:"name"`
	Color      *string   `json:"color,omitempty"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// DictionarySummary is a Dictionary together with the number of cards it holds.
type DictionarySummary struct {
	Dictionary
	CardsCount int `json:"cards_count"`
}

// DictionaryInput holds the fields needed to create a Dictionary.
type DictionaryInput struct {
	LanguageID int64
	Name       string
	Color      *string
	SortOrder  int
}

// Validate checks that the dictionary can be persisted.
func (in DictionaryInput) Validate() error {
	if in.LanguageID <= 0 {
		return NewValidationError("language_id", ErrInvalidID)
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", ErrNameEmpty)
	}
	return nil
}

// DictionaryPatch describes a partial update. Nil fields are left untouched.
type DictionaryPatch struct {
	Name      *string
	Color     *string
	SortOrder *int
}

// Validate rejects a patch that would blank the name.
func (p DictionaryPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name", ErrNameEmpty)
	}
	return nil
}
