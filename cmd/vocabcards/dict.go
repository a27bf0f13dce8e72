package main

import (
	"errors"
	"fmt"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/service"
	"github.com/spf13/cobra"
)

func newDictCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the dictionaries of the selected language",
	}
	cmd.AddCommand(
		newDictListCmd(a),
		newDictAddCmd(a),
		newDictRenameCmd(a),
		newDictDeleteCmd(a),
	)
	return cmd
}

func newDictListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dictionaries with their card counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			dicts, err := a.dicts.ListByLanguage(ctx, sel.Language.ID)
			if err != nil {
				return err
			}

			cmd.Printf("Language: %s (%d)\n", sel.Language.Name, sel.Language.ID)
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "\tID\tNAME\tCARDS\tCOLOR\tORDER")
			for _, d := range dicts {
				mark := ""
				if d.ID == sel.Dictionary.ID {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%d\n",
					mark, d.ID, d.Name, d.CardsCount, deref(d.Color), d.SortOrder)
			}
			return tw.Flush()
		},
	}
}

func newDictAddCmd(a *app) *cobra.Command {
	var (
		color     string
		sortOrder int
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a dictionary to the selected language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			dict, err := a.dicts.Create(ctx, domain.DictionaryInput{
				LanguageID: sel.Language.ID,
				Name:       args[0],
				Color:      domain.NullIfBlank(&color),
				SortOrder:  sortOrder,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Added dictionary %d (%s) to %s\n", dict.ID, dict.Name, sel.Language.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "display color, e.g. #ff8800")
	cmd.Flags().IntVar(&sortOrder, "sort", 0, "position in the dictionary list")
	return cmd
}

func newDictRenameCmd(a *app) *cobra.Command {
	var (
		color     string
		sortOrder int
	)
	cmd := &cobra.Command{
		Use:   "rename ID [NAME]",
		Short: "Rename a dictionary or change its color and order",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch domain.DictionaryPatch
			if len(args) == 2 {
				patch.Name = &args[1]
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("sort") {
				patch.SortOrder = &sortOrder
			}
			if err := a.dicts.Update(cmd.Context(), id, patch); err != nil {
				return err
			}
			cmd.Printf("Updated dictionary %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "display color; empty clears it")
	cmd.Flags().IntVar(&sortOrder, "sort", 0, "position in the dictionary list")
	return cmd
}

func newDictDeleteCmd(a *app) *cobra.Command {
	var (
		withCards bool
		moveTo    int64
		yes       bool
	)
	cmd := &cobra.Command{
		Use:   "delete ID (--with-cards | --move-to TARGET)",
		Short: "Delete a dictionary, removing its cards or moving them first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var (
				mode     service.DeleteMode
				question string
			)
			switch {
			case withCards:
				mode = service.DeleteWithCards()
				question = fmt.Sprintf("Delete dictionary %d and all its cards?", id)
			case moveTo > 0:
				mode = service.MoveCardsTo(moveTo)
				question = fmt.Sprintf("Move all cards of dictionary %d to %d and delete it?", id, moveTo)
			default:
				return errors.New("choose --with-cards or --move-to")
			}
			if !yes && !confirm(cmd, question) {
				cmd.Println("Aborted")
				return nil
			}

			moved, err := a.library.DeleteDictionary(cmd.Context(), id, mode)
			if err != nil {
				return err
			}
			if withCards {
				cmd.Printf("Deleted dictionary %d with its cards\n", id)
			} else {
				cmd.Printf("Moved %d cards to dictionary %d and deleted dictionary %d\n", moved, moveTo, id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withCards, "with-cards", false, "delete the cards too")
	cmd.Flags().Int64Var(&moveTo, "move-to", 0, "move the cards to this dictionary first")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.MarkFlagsMutuallyExclusive("with-cards", "move-to")
	return cmd
}
