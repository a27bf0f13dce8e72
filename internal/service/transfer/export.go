package transfer

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/samber/lo"
)

// ExportHeader is the first line of every export.
const ExportHeader = "word,translation,transcription,rating,examples"

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// quoteField wraps v in double quotes, doubling any quote inside it. Line
// breaks become spaces so that every card occupies exactly one line.
func quoteField(v string) string {
	v = newlines.Replace(v)
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// exportLine renders one card. Examples are joined with "; ", the separator
// import splits on, so an example that itself contains ';' or '|' comes back
// as several examples.
func exportLine(c domain.Card) string {
	transcription := ""
	if c.Transcription != nil {
		transcription = *c.Transcription
	}
	fields := []string{
		c.Word,
		c.Translation,
		transcription,
		strconv.Itoa(int(c.Rating)),
		strings.Join(c.Sentences(), "; "),
	}
	return strings.Join(lo.Map(fields, func(f string, _ int) string { return quoteField(f) }), ",")
}

// Export writes every card of the dictionary to w, in id order, and returns
// the number of cards written.
func (s *Service) Export(ctx context.Context, dictionaryID int64, w io.Writer) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.dicts.GetByID(ctx, dictionaryID); err != nil {
		return 0, err
	}
	cards, err := s.cards.ListAllWithExamples(ctx, dictionaryID)
	if err != nil {
		log.Error("failed to load cards for export",
			slog.String("error", err.Error()),
			slog.Int64("dictionary_id", dictionaryID))
		return 0, &ServiceError{Operation: "export", Message: "failed to load cards", Err: err}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(ExportHeader + "\n"); err != nil {
		return 0, err
	}
	for _, c := range cards {
		if _, err := bw.WriteString(exportLine(c) + "\n"); err != nil {
			return 0, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}

	log.Info("dictionary exported",
		slog.Int64("dictionary_id", dictionaryID),
		slog.Int("cards", len(cards)))
	return len(cards), nil
}

// ExportString is Export into a string.
func (s *Service) ExportString(ctx context.Context, dictionaryID int64) (string, error) {
	var sb strings.Builder
	if _, err := s.Export(ctx, dictionaryID, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
