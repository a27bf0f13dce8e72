package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/service/card_review"
	"github.com/spf13/cobra"
)

// prompt prints label and reads one line. It reports false on end of input
// or when the user types q.
func prompt(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	answer := strings.TrimSpace(in.Text())
	if strings.EqualFold(answer, "q") {
		return "", false
	}
	return answer, true
}

func heading(c *domain.Card) string {
	if c.Transcription != nil {
		return fmt.Sprintf("%s [%s]", c.Word, *c.Transcription)
	}
	return c.Word
}

func newQuizCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Multiple-choice quiz over the selected dictionary",
		Long: `Shows each card of the selected dictionary once, in random order, with
five translations to choose from. A right answer raises the card's rating,
a wrong one lowers it. Type q to stop early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			elig, err := a.review.CheckEligibility(ctx, sel.Dictionary.ID)
			if err != nil {
				return err
			}
			if !elig.Eligible {
				fmt.Fprintf(out,
					"%s is too small for a quiz: it needs %d cards with %d different translations (has %d cards, %d translations)\n",
					sel.Dictionary.Name, card_review.MinQuizCards, card_review.MinDistinctTranslations,
					elig.Cards, elig.DistinctTranslations)
				return nil
			}

			sess, err := a.review.StartQuiz(ctx, sel.Dictionary.ID)
			if err != nil {
				return err
			}

			in := bufio.NewScanner(cmd.InOrStdin())
		loop:
			for sess.State() == card_review.StateReady {
				q := sess.Current()
				pos, total := sess.Position()
				if q.Skipped() {
					fmt.Fprintf(out, "[%d/%d] %s: not enough translations to choose from, skipping\n", pos, total, q.Card.Word)
					if err := sess.Next(ctx); err != nil {
						return err
					}
					continue
				}

				fmt.Fprintf(out, "\n[%d/%d] %s\n", pos, total, heading(&q.Card))
				for i, opt := range q.Options {
					fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
				}

				for !q.Answered() {
					answer, ok := prompt(in, out, fmt.Sprintf("answer 1-%d (q to quit): ", len(q.Options)))
					if !ok {
						break loop
					}
					n, err := strconv.Atoi(answer)
					if err != nil || n < 1 || n > len(q.Options) {
						fmt.Fprintf(out, "pick a number from 1 to %d\n", len(q.Options))
						continue
					}
					res, err := sess.Answer(ctx, q.Options[n-1])
					if err != nil {
						return err
					}
					if res.Correct {
						fmt.Fprintf(out, "correct! rating %d\n", res.Rating)
					} else {
						fmt.Fprintf(out, "wrong, it is %q. rating %d\n", res.Expected, res.Rating)
					}
				}
				if err := sess.Next(ctx); err != nil {
					return err
				}
			}

			correct, incorrect := sess.Score()
			fmt.Fprintf(out, "Score: %d correct, %d incorrect\n", correct, incorrect)
			return nil
		},
	}
}

func newRepeatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repeat",
		Short: "Self-assess the weak cards of the selected dictionary",
		Long: `Walks the cards rated below known, weakest first. For each card answer
k (know it), d (don't know it), s (skip), r (reveal the translation) or
q (quit). Only k and d change the rating. The list starts over when it
runs out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			b, err := a.review.StartRepetition(ctx, sel.Dictionary.ID)
			if err != nil {
				return err
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			reviewed := 0
			for {
				c := b.Current()
				if c == nil {
					fmt.Fprintf(out, "No weak cards left in %s\n", sel.Dictionary.Name)
					break
				}
				translation := c.Translation
				fmt.Fprintf(out, "\n%s (rating %d)\n", heading(c), c.Rating)

				answer, ok := prompt(in, out, "k/d/s/r/q: ")
				if !ok {
					break
				}
				var rating domain.Rating
				switch strings.ToLower(answer) {
				case "r":
					fmt.Fprintf(out, "  %s\n", translation)
					for _, s := range c.Sentences() {
						fmt.Fprintf(out, "  - %s\n", s)
					}
					continue
				case "k":
					rating, err = b.Know(ctx)
				case "d":
					rating, err = b.DontKnow(ctx)
				case "s":
					err = b.Skip(ctx)
					if err == nil {
						continue
					}
				default:
					fmt.Fprintln(out, "k = know, d = don't know, s = skip, r = reveal, q = quit")
					continue
				}
				if err != nil {
					if errors.Is(err, card_review.ErrNoCards) {
						continue
					}
					return err
				}
				reviewed++
				fmt.Fprintf(out, "  %s → rating %d\n", translation, rating)
			}

			fmt.Fprintf(out, "Reviewed %d cards\n", reviewed)
			return nil
		},
	}
}
