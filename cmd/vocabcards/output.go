package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/vocabcards/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, s)
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func printCard(w io.Writer, c *domain.Card) {
	fmt.Fprintf(w, "#%d  %s  →  %s\n", c.ID, c.Word, c.Translation)
	if c.Transcription != nil {
		fmt.Fprintf(w, "  transcription: [%s]\n", *c.Transcription)
	}
	if c.Explanation != nil {
		fmt.Fprintf(w, "  explanation:   %s\n", *c.Explanation)
	}
	fmt.Fprintf(w, "  rating:        %d (%s)\n", c.Rating, c.Rating)
	fmt.Fprintf(w, "  dictionary:    %d\n", c.DictionaryID)
	for _, s := range c.Sentences() {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

func printCardTable(w io.Writer, cards []domain.Card) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tWORD\tTRANSLATION\tTRANSCRIPTION\tRATING")
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", c.ID, c.Word, c.Translation, deref(c.Transcription), c.Rating)
	}
	return tw.Flush()
}
