package domain

import (
	"strings"
	"time"
)

// Default bootstrap values used when a store is opened for the first time or
// when legacy cards without a dictionary are found.
const (
	DefaultLanguageName   = "English"
	DefaultLanguageCode   = "en"
	DefaultDictionaryName = "Default"
)

// Language is the top-level grouping of dictionaries. Names are unique.
type Language struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      *string   `json:"code,omitempty"`
	Icon      *string   `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LanguageInput holds the writable fields of a Language.
type LanguageInput struct {
	Name string
	Code *string
	Icon *string
}

// Normalize trims the name and turns blank optional fields into nil.
func (in LanguageInput) Normalize() LanguageInput {
	return LanguageInput{
		Name: strings.TrimSpace(in.Name),
		Code: NullIfBlank(in.Code),
		Icon: NullIfBlank(in.Icon),
	}
}

// Validate checks that the language can be persisted.
func (in LanguageInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", ErrNameEmpty)
	}
	return nil
}

// NullIfBlank returns nil for a nil or whitespace-only string, otherwise a
// pointer to the trimmed value.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
