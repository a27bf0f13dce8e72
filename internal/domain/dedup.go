package domain

import (
	"fmt"
	"strings"
)

// DedupMode selects which existing card counts as a duplicate during import.
type DedupMode string

const (
	// DedupByWord treats any card with the same word (case-insensitive) as a
	// duplicate, regardless of translation.
	DedupByWord DedupMode = "word"
	// DedupByWordAndTranslation requires both word and translation to match.
	DedupByWordAndTranslation DedupMode = "word+translation"
)

// ParseDedupMode parses a user-supplied mode name.
func ParseDedupMode(s string) (DedupMode, error) {
	switch DedupMode(strings.ToLower(strings.TrimSpace(s))) {
	case DedupByWord:
		return DedupByWord, nil
	case DedupByWordAndTranslation:
		return DedupByWordAndTranslation, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDedupMode, s)
	}
}
