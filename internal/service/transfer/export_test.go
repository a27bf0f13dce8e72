package transfer

import (
	"testing"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportLine(t *testing.T) {
	t.Parallel()

	tr := "kæt"
	card := domain.Card{
		Word:          `say "hi"`,
		Translation:   "кот, кошка",
		Transcription: &tr,
		Rating:        domain.RatingWeak,
		Examples:      []domain.Example{{Sentence: "One\nline"}, {Sentence: "Two"}},
	}

	assert.Equal(t, `"say ""hi""","кот, кошка","kæt","1","One line; Two"`, exportLine(card))
}

func TestExportLine_ExampleSeparatorsSplitOnReimport(t *testing.T) {
	t.Parallel()

	card := domain.Card{
		Word:        "either",
		Translation: "любой",
		Examples:    []domain.Example{{Sentence: "this; or that"}, {Sentence: "a|b"}},
	}

	doc := Parse(ExportHeader + "\n" + exportLine(card))
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, []string{"this", "or that", "a", "b"}, doc.Rows[0].Card.Examples)
}
