package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyAndHeaderOnly(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "\n\n", "word,translation", "Word\tПеревод\n"} {
		doc := Parse(text)
		assert.Empty(t, doc.Rows, "text %q", text)
		assert.Zero(t, doc.Invalid, "text %q", text)
	}
}

func TestParse_MalformedRowsAreSkipped(t *testing.T) {
	t.Parallel()

	doc := Parse("word,translation\nStick,,придерживаться\n,nothing")

	assert.True(t, doc.HasHeader)
	assert.Empty(t, doc.Rows)
	assert.Equal(t, 2, doc.Invalid)
}

func TestParse_TabWithoutHeaderUsesDefaultPositions(t *testing.T) {
	t.Parallel()

	doc := Parse("cat\tкот\tkæt\t1\tThe cat sleeps.; A cat\ndog\tпёс")

	assert.Equal(t, '\t', doc.Delimiter)
	assert.False(t, doc.HasHeader)
	assert.Equal(t, DefaultColumns, doc.Columns)
	require.Len(t, doc.Rows, 2)

	cat := doc.Rows[0].Card
	assert.Equal(t, "cat", cat.Word)
	assert.Equal(t, "кот", cat.Translation)
	require.NotNil(t, cat.Transcription)
	assert.Equal(t, "kæt", *cat.Transcription)
	assert.Equal(t, 1, cat.Rating)
	assert.Equal(t, []string{"The cat sleeps.", "A cat"}, cat.Examples)

	dog := doc.Rows[1].Card
	assert.Nil(t, dog.Transcription)
	assert.Zero(t, dog.Rating)
	assert.Empty(t, dog.Examples)
}

func TestParse_HeaderMapsColumns(t *testing.T) {
	t.Parallel()

	doc := Parse("Examples,Meaning,Word\n\"a | b\",кот,cat,extra")

	require.True(t, doc.HasHeader)
	assert.Equal(t, 2, doc.Columns.Word)
	assert.Equal(t, 1, doc.Columns.Translation)
	assert.Equal(t, 0, doc.Columns.Examples)
	assert.Equal(t, DefaultColumns.Transcription, doc.Columns.Transcription)
	assert.Equal(t, DefaultColumns.Rating, doc.Columns.Rating)

	require.Len(t, doc.Rows, 1)
	card := doc.Rows[0].Card
	assert.Equal(t, "cat", card.Word)
	assert.Equal(t, "кот", card.Translation)
	assert.Equal(t, []string{"a", "b"}, card.Examples)
	assert.Equal(t, 2, doc.Rows[0].Record)
}

func TestParse_StrayQuoteStaysInItsRow(t *testing.T) {
	t.Parallel()

	doc := Parse("tv,12\" screen\ncat,кот\ndog,пёс\n")

	require.Len(t, doc.Rows, 3)
	assert.Zero(t, doc.Invalid)
	assert.Equal(t, "tv", doc.Rows[0].Card.Word)
	assert.Equal(t, `12" screen`, doc.Rows[0].Card.Translation)
	assert.Nil(t, doc.Rows[0].Card.Transcription)
	assert.Equal(t, "cat", doc.Rows[1].Card.Word)
	assert.Equal(t, "кот", doc.Rows[1].Card.Translation)
	assert.Equal(t, "dog", doc.Rows[2].Card.Word)
	assert.Equal(t, 3, doc.Rows[2].Record)
}

func TestParse_QuotedMultilineCellAfterDelimiter(t *testing.T) {
	t.Parallel()

	doc := Parse("word,translation,transcription,rating,examples\ncat,кот,,1,\"The cat.\nSleeps.\"\ndog,пёс")

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, []string{"The cat.\nSleeps."}, doc.Rows[0].Card.Examples)
	assert.Equal(t, "dog", doc.Rows[1].Card.Word)
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "word", normalizeHeader(" W o_rd "))
	assert.Equal(t, "перевод", normalizeHeader("ПЕРЕВОД"))
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"":    0,
		"abc": 0,
		"1":   1,
		"2":   2,
		"7":   2,
		"-3":  0,
		"1.5": 1,
		"2.0": 2,
		"1 ":  1,
		" 2x": 2,
		"+1":  1,
		"-":   0,
		".5":  0,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseRating(in), "input %q", in)
	}

	assert.Equal(t, 2, parseRating("99999999999999999999"))
	assert.Equal(t, 0, parseRating("-99999999999999999999"))
}

func TestSplitExamples(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"one", "two", "three"}, splitExamples(" one ;two|  three ;; "))
	assert.Empty(t, splitExamples(""))
}
