package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocabcards/internal/config"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/domain/srs"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/platform/sqlite"
	"github.com/phrazzld/vocabcards/internal/service"
	"github.com/phrazzld/vocabcards/internal/service/card_review"
	"github.com/phrazzld/vocabcards/internal/service/transfer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Viper keys for the stored language and dictionary selection. They are not
// part of config.Config: the caller owns the selection and passes it per run.
const (
	selectionLanguageKey   = "selection.language"
	selectionDictionaryKey = "selection.dictionary"
)

// app holds the configuration and the wired services of one command run.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *slog.Logger
	db  *sqlite.DB

	langs    *sqlite.LanguageStore
	dicts    *sqlite.DictionaryStore
	cards    *sqlite.CardStore
	library  service.LibraryService
	cardSvc  service.CardService
	transfer *transfer.Service
	review   card_review.CardReviewService
}

func newApp() *app {
	return &app{v: viper.New()}
}

// open loads configuration, sets up logging, brings the schema up to date and
// wires the services. It runs before every command.
func (a *app) open(cmd *cobra.Command) error {
	opts := []config.Option{config.WithViper(a.v)}
	if path := a.v.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.Setup(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	a.log = log

	ctx := logger.WithLogger(cmd.Context(), log)
	cmd.SetContext(ctx)

	db, err := sqlite.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to prepare database: %w", err)
	}
	a.db = db

	// Stores are built after EnsureSchema, which may have replaced the handle.
	a.langs = sqlite.NewLanguageStore(db.SQL(), log)
	a.dicts = sqlite.NewDictionaryStore(db.SQL(), log)
	a.cards = sqlite.NewCardStore(db.SQL(), log)

	if a.library, err = service.NewLibraryService(db.SQL(), a.langs, a.dicts, log); err != nil {
		return err
	}
	if a.cardSvc, err = service.NewCardService(a.cards, a.dicts, log); err != nil {
		return err
	}
	if a.transfer, err = transfer.NewService(db.SQL(), a.cards, a.dicts, log); err != nil {
		return err
	}
	a.review = card_review.NewCardReviewService(a.cards, srs.NewDefaultService(), log)

	log.Debug("application initialized",
		slog.String("database", cfg.Database.Path),
		slog.String("log_level", cfg.Log.Level))
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) optionalID(key string) *int64 {
	if !a.v.IsSet(key) {
		return nil
	}
	id := a.v.GetInt64(key)
	if id <= 0 {
		return nil
	}
	return &id
}

// selection resolves the --lang and --dict ids, falling back to defaults when
// they are absent or stale.
func (a *app) selection(ctx context.Context) (*service.Selection, error) {
	return a.library.ResolveSelection(ctx,
		a.optionalID(selectionLanguageKey),
		a.optionalID(selectionDictionaryKey))
}

func (a *app) dedupMode(override string) (domain.DedupMode, error) {
	if override != "" {
		return domain.ParseDedupMode(override)
	}
	return domain.ParseDedupMode(a.cfg.Import.DedupMode)
}
