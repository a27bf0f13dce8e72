package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		dedup  string
	)
	cmd := &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Import CSV or TSV text into the selected dictionary",
		Long: `Import cards from delimited text. The delimiter is a tab when the first
line contains one, otherwise a comma. A header row naming "word" and
"translation" (or translate, meaning, перевод) is detected automatically;
without one the columns are word, translation, transcription, rating,
examples. Examples are separated by ';' or '|'.

Rows without a word or translation are skipped. Reads standard input when
FILE is omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			mode, err := a.dedupMode(dedup)
			if err != nil {
				return err
			}

			reader := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, openErr := os.Open(filepath.Clean(args[0]))
				if openErr != nil {
					return fmt.Errorf("failed to open import file: %w", openErr)
				}
				defer func() {
					if cerr := file.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				reader = file
			}
			raw, err := io.ReadAll(reader)
			if err != nil {
				return fmt.Errorf("failed to read import text: %w", err)
			}

			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}

			if dryRun {
				report, err := a.transfer.Analyze(ctx, sel.Dictionary.ID, string(raw), mode)
				if err != nil {
					return err
				}
				cmd.Printf("Dry run for %s: %d rows, %d to add, %d duplicates, %d invalid\n",
					sel.Dictionary.Name, report.Total, report.ToAdd, report.Duplicates, report.Invalid)
				return nil
			}

			report, err := a.transfer.Apply(ctx, sel.Dictionary.ID, string(raw), mode)
			if err != nil {
				return err
			}
			cmd.Printf("Imported into %s: %d added, %d skipped, %d invalid\n",
				sel.Dictionary.Name, report.Added, report.Skipped, report.Invalid)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be imported")
	cmd.Flags().StringVar(&dedup, "dedup", "", "duplicate check: word or word+translation (default from config)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected dictionary as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			sel, err := a.selection(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			toFile := out != "" && out != "-"
			if toFile {
				file, createErr := os.Create(filepath.Clean(out))
				if createErr != nil {
					return fmt.Errorf("failed to create export file: %w", createErr)
				}
				defer func() {
					if cerr := file.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = file
			}

			n, err := a.transfer.Export(ctx, sel.Dictionary.ID, w)
			if err != nil {
				return err
			}
			if toFile {
				cmd.Printf("Exported %d cards from %s to %s\n", n, sel.Dictionary.Name, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; standard output when empty or -")
	return cmd
}
