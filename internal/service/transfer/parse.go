package transfer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/samber/lo"
)

// Columns holds the zero-based cell position of each logical field.
type Columns struct {
	Word          int
	Translation   int
	Transcription int
	Rating        int
	Examples      int
}

// DefaultColumns is the layout assumed when the text has no header row.
var DefaultColumns = Columns{
	Word:          0,
	Translation:   1,
	Transcription: 2,
	Rating:        3,
	Examples:      4,
}

var (
	wordHeaders          = []string{"word"}
	translationHeaders   = []string{"translation", "translate", "meaning", "перевод"}
	transcriptionHeaders = []string{"transcription"}
	ratingHeaders        = []string{"rating"}
	examplesHeaders      = []string{"examples", "example"}
)

// Row is one accepted data row.
type Row struct {
	// Record is the one-based position of the row among the non-blank records.
	Record int
	Card   domain.CardInput
}

// Document is the result of parsing import text.
type Document struct {
	Delimiter rune
	HasHeader bool
	Columns   Columns
	Rows      []Row
	// Invalid counts data rows skipped for a missing word or translation.
	Invalid int
}

// Parse infers the delimiter and header of text and converts every data row
// into a normalized card input. It never fails: empty or header-only text
// yields a Document without rows.
func Parse(text string) Document {
	doc := Document{Delimiter: ',', Columns: DefaultColumns}

	doc.Delimiter = DetectDelimiter(text)
	records := SplitRecords(text, doc.Delimiter)
	if len(records) == 0 {
		return doc
	}

	first := 0
	if cols, ok := detectHeader(ParseLine(records[0], doc.Delimiter)); ok {
		doc.HasHeader = true
		doc.Columns = cols
		first = 1
	}

	for i := first; i < len(records); i++ {
		card, ok := parseRow(ParseLine(records[i], doc.Delimiter), doc.Columns)
		if !ok {
			doc.Invalid++
			continue
		}
		doc.Rows = append(doc.Rows, Row{Record: i + 1, Card: card})
	}
	return doc
}

func normalizeHeader(cell string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, cell)
}

// detectHeader treats cells as a header when they name both a word column and
// a translation column. Fields not named fall back to their default position.
func detectHeader(cells []string) (Columns, bool) {
	names := lo.Map(cells, func(c string, _ int) string { return normalizeHeader(c) })
	find := func(aliases []string, fallback int) (int, bool) {
		_, idx, found := lo.FindIndexOf(names, func(n string) bool {
			return lo.Contains(aliases, n)
		})
		if !found {
			return fallback, false
		}
		return idx, true
	}

	word, hasWord := find(wordHeaders, DefaultColumns.Word)
	translation, hasTranslation := find(translationHeaders, DefaultColumns.Translation)
	if !hasWord || !hasTranslation {
		return DefaultColumns, false
	}

	cols := Columns{Word: word, Translation: translation}
	cols.Transcription, _ = find(transcriptionHeaders, DefaultColumns.Transcription)
	cols.Rating, _ = find(ratingHeaders, DefaultColumns.Rating)
	cols.Examples, _ = find(examplesHeaders, DefaultColumns.Examples)
	return cols, true
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func parseRow(cells []string, cols Columns) (domain.CardInput, bool) {
	in := domain.CardInput{
		Word:          cellAt(cells, cols.Word),
		Translation:   cellAt(cells, cols.Translation),
		Transcription: domain.NullIfBlank(domain.StringPtr(cellAt(cells, cols.Transcription))),
		Examples:      splitExamples(cellAt(cells, cols.Examples)),
		Rating:        parseRating(cellAt(cells, cols.Rating)),
	}
	if in.Validate() != nil {
		return domain.CardInput{}, false
	}
	return in, true
}

func splitExamples(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	return lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}

// parseRating reads the leading integer of s, so spreadsheet values such as
// "2.0" or "1 star" keep their number. Anything without one rates 0.
func parseRating(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return int(domain.RatingUnknown)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// overflow: only the sign matters after clamping
		if s[0] == '-' {
			return int(domain.RatingUnknown)
		}
		return int(domain.RatingKnown)
	}
	return int(domain.ClampRating(n))
}
