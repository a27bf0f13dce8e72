package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// commands that work without a database.
var offlineCommands = map[string]bool{
	"help":       true,
	"completion": true,
}

func newRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:           "vocabcards",
		Short:         "Vocabulary cards organized by language and dictionary",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if offlineCommands[cmd.Name()] {
				return nil
			}
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./vocabcards.yaml or ~/.vocabcards/vocabcards.yaml)")
	flags.String("db", "", "SQLite database file")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")
	flags.Int64("lang", 0, "selected language id")
	flags.Int64("dict", 0, "selected dictionary id")

	bindFlagToViper(a.v, "config", flags.Lookup("config"))
	bindFlagToViper(a.v, "database.path", flags.Lookup("db"))
	bindFlagToViper(a.v, "log.level", flags.Lookup("log-level"))
	bindFlagToViper(a.v, "log.format", flags.Lookup("log-format"))
	bindFlagToViper(a.v, selectionLanguageKey, flags.Lookup("lang"))
	bindFlagToViper(a.v, selectionDictionaryKey, flags.Lookup("dict"))

	root.AddCommand(
		newLangCmd(a),
		newDictCmd(a),
		newCardCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newQuizCmd(a),
		newRepeatCmd(a),
	)
	return root
}

// bindFlagToViper makes an explicitly set flag override the config file and
// environment for key.
func bindFlagToViper(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(v.BindPFlag(key, flag))
}
