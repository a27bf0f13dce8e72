package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/spf13/cobra"
)

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage the cards of the selected dictionary",
	}
	cmd.AddCommand(
		newCardAddCmd(a),
		newCardEditCmd(a),
		newCardShowCmd(a),
		newCardListCmd(a),
		newCardSearchCmd(a),
		newCardDeleteCmd(a),
		newCardMoveCmd(a),
		newCardRateCmd(a),
		newCardNavCmd(a),
	)
	return cmd
}

// cardFlags are the writable card fields shared by add and edit.
type cardFlags struct {
	word          string
	translation   string
	transcription string
	explanation   string
	examples      []string
	rating        int
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.word, "word", "w", "", "the word")
	cmd.Flags().StringVarP(&f.translation, "translation", "t", "", "its translation")
	cmd.Flags().StringVar(&f.transcription, "transcription", "", "pronunciation")
	cmd.Flags().StringVar(&f.explanation, "explanation", "", "free-form notes")
	cmd.Flags().StringArrayVarP(&f.examples, "example", "e", nil, "example sentence (repeatable)")
	cmd.Flags().IntVarP(&f.rating, "rating", "r", 0, "rating 0-2, clamped")
}

func (f *cardFlags) input() domain.CardInput {
	return domain.CardInput{
		Word:          f.word,
		Translation:   f.translation,
		Transcription: domain.StringPtr(f.transcription),
		Explanation:   domain.StringPtr(f.explanation),
		Examples:      f.examples,
		Rating:        f.rating,
	}
}

// overlay applies only the flags set on cmd to the fields of an existing card.
func (f *cardFlags) overlay(cmd *cobra.Command, c *domain.Card) domain.CardInput {
	in := domain.CardInput{
		Word:          c.Word,
		Translation:   c.Translation,
		Transcription: c.Transcription,
		Explanation:   c.Explanation,
		Examples:      c.Sentences(),
		Rating:        int(c.Rating),
	}
	changed := cmd.Flags().Changed
	if changed("word") {
		in.Word = f.word
	}
	if changed("translation") {
		in.Translation = f.translation
	}
	if changed("transcription") {
		in.Transcription = domain.StringPtr(f.transcription)
	}
	if changed("explanation") {
		in.Explanation = domain.StringPtr(f.explanation)
	}
	if changed("example") {
		in.Examples = f.examples
	}
	if changed("rating") {
		in.Rating = f.rating
	}
	return in
}

func newCardAddCmd(a *app) *cobra.Command {
	var f cardFlags
	cmd := &cobra.Command{
		Use:   "add [WORD TRANSLATION]",
		Short: "Add a card to the selected dictionary",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 2 {
				f.word, f.translation = args[0], args[1]
			}
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			card, err := a.cardSvc.CreateCard(ctx, sel.Dictionary.ID, f.input())
			if err != nil {
				return err
			}
			cmd.Printf("Added card %d to %s\n", card.ID, sel.Dictionary.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newCardEditCmd(a *app) *cobra.Command {
	var f cardFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a card; --example replaces the whole example list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.cardSvc.GetCard(ctx, id)
			if err != nil {
				return err
			}
			card, err := a.cardSvc.UpdateCard(ctx, id, f.overlay(cmd, current))
			if err != nil {
				return err
			}
			printCard(cmd.OutOrStdout(), card)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newCardShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a card with its examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			card, err := a.cardSvc.GetCard(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCard(cmd.OutOrStdout(), card)
			return nil
		},
	}
}

func newCardListCmd(a *app) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cards of the selected dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			cards, err := a.cardSvc.ListCards(ctx, sel.Dictionary.ID, limit, offset)
			if err != nil {
				return err
			}
			total, err := a.cardSvc.CountCards(ctx, sel.Dictionary.ID)
			if err != nil {
				return err
			}
			if err := printCardTable(cmd.OutOrStdout(), cards); err != nil {
				return err
			}
			cmd.Printf("%d of %d cards\n", len(cards), total)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "page size; 0 lists everything")
	cmd.Flags().IntVar(&offset, "offset", 0, "cards to skip")
	return cmd
}

func newCardSearchCmd(a *app) *cobra.Command {
	var (
		all   bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find cards whose word or translation contains QUERY",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var dictID *int64
			if !all {
				sel, err := a.selection(ctx)
				if err != nil {
					return err
				}
				dictID = &sel.Dictionary.ID
			}
			cards, err := a.cardSvc.SearchCards(ctx, strings.Join(args, " "), dictID, limit, 0)
			if err != nil {
				return err
			}
			return printCardTable(cmd.OutOrStdout(), cards)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "search every dictionary")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of results; 0 for all")
	return cmd
}

func newCardDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a card and its examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.cardSvc.DeleteCard(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Deleted card %d\n", id)
			return nil
		},
	}
}

func newCardMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID DICTIONARY_ID",
		Short: "Move a card to another dictionary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := a.cardSvc.MoveCard(cmd.Context(), id, target); err != nil {
				return err
			}
			cmd.Printf("Moved card %d to dictionary %d\n", id, target)
			return nil
		},
	}
}

var directions = map[string]store.Direction{
	"first": store.DirectionFirst,
	"last":  store.DirectionLast,
	"next":  store.DirectionNext,
	"prev":  store.DirectionPrev,
}

func newCardNavCmd(a *app) *cobra.Command {
	var from int64
	cmd := &cobra.Command{
		Use:       "nav first|last|next|prev",
		Short:     "Show a neighbouring card of the selected dictionary",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"first", "last", "next", "prev"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := directions[args[0]]
			if (dir == store.DirectionNext || dir == store.DirectionPrev) && from <= 0 {
				return fmt.Errorf("%s needs --from", args[0])
			}
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			card, err := a.cardSvc.Navigate(ctx, sel.Dictionary.ID, from, dir)
			if err != nil {
				return err
			}
			printCard(cmd.OutOrStdout(), card)
			return nil
		},
	}
	cmd.Flags().Int64Var(&from, "from", 0, "card id to move from")
	return cmd
}

func newCardRateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate ID RATING",
		Short: "Set a card rating (0 unknown, 1 weak, 2 known)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[1])
			}
			card, err := a.cardSvc.RateCard(cmd.Context(), id, rating)
			if err != nil {
				return err
			}
			cmd.Printf("Card %d rated %d\n", card.ID, card.Rating)
			return nil
		},
	}
}
