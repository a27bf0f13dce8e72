package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/store"
	"github.com/spf13/cobra"
)

func newLangCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Manage languages",
	}
	cmd.AddCommand(
		newLangListCmd(a),
		newLangAddCmd(a),
		newLangRenameCmd(a),
		newLangDeleteCmd(a),
	)
	return cmd
}

func newLangListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List languages by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}
			langs, err := a.langs.List(ctx)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "\tID\tNAME\tCODE\tICON")
			for _, l := range langs {
				mark := ""
				if l.ID == sel.Language.ID {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", mark, l.ID, l.Name, deref(l.Code), deref(l.Icon))
			}
			return tw.Flush()
		},
	}
}

func newLangAddCmd(a *app) *cobra.Command {
	var code, icon string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a language with an empty default dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := domain.LanguageInput{
				Name: args[0],
				Code: domain.StringPtr(code),
				Icon: domain.StringPtr(icon),
			}.Normalize()
			if err := in.Validate(); err != nil {
				return err
			}
			lang, err := a.langs.Create(ctx, in)
			if store.IsDuplicateError(err) {
				return fmt.Errorf("a language named %q already exists", in.Name)
			}
			if err != nil {
				return err
			}
			dict, err := a.dicts.FirstOrCreateDefault(ctx, lang.ID)
			if err != nil {
				return err
			}
			cmd.Printf("Added language %d (%s) with dictionary %d\n", lang.ID, lang.Name, dict.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "language code, e.g. en")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon, e.g. a flag emoji")
	return cmd
}

func newLangRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			lang, err := a.langs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			in := domain.LanguageInput{Name: args[1], Code: lang.Code, Icon: lang.Icon}.Normalize()
			if err := in.Validate(); err != nil {
				return err
			}
			err = a.langs.Update(ctx, id, in)
			if store.IsDuplicateError(err) {
				return fmt.Errorf("a language named %q already exists", in.Name)
			}
			if err != nil {
				return err
			}
			cmd.Printf("Renamed language %d to %s\n", id, in.Name)
			return nil
		},
	}
}

func newLangDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a language with all its dictionaries and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete language %d and every card in it?", id)) {
				cmd.Println("Aborted")
				return nil
			}
			if err := a.library.DeleteLanguage(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Deleted language %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N] ", question)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
