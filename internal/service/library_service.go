package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
	"github.com/phrazzld/vocabcards/internal/store"
)

// Selection is the language and dictionary the user is working in.
type Selection struct {
	Language   domain.Language
	Dictionary domain.Dictionary
}

// DeleteMode selects what happens to a dictionary's cards when it is deleted.
// The zero value is rejected so that callers always choose.
type DeleteMode struct {
	withCards bool
	moveTo    int64
}

// DeleteWithCards removes the dictionary together with all its cards.
func DeleteWithCards() DeleteMode {
	return DeleteMode{withCards: true}
}

// MoveCardsTo moves every card into target before the dictionary is removed.
func MoveCardsTo(target int64) DeleteMode {
	return DeleteMode{moveTo: target}
}

// LibraryService manages languages and dictionaries.
type LibraryService interface {
	// ResolveSelection validates ids persisted by the UI, either of which may
	// be nil or stale, and falls back to defaults. A dictionary that belongs
	// to a different language than the requested one is ignored. Missing
	// defaults are created, so the result always names a live dictionary.
	ResolveSelection(ctx context.Context, languageID, dictionaryID *int64) (*Selection, error)

	// DeleteDictionary removes a dictionary using the given mode, atomically.
	// It returns the number of cards moved (zero for DeleteWithCards).
	DeleteDictionary(ctx context.Context, id int64, mode DeleteMode) (int64, error)

	// DeleteLanguage removes a language with all its dictionaries and cards.
	DeleteLanguage(ctx context.Context, id int64) error
}

type libraryServiceImpl struct {
	db     *sql.DB
	langs  store.LanguageStore
	dicts  store.DictionaryStore
	logger *slog.Logger
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(
	db *sql.DB,
	langs store.LanguageStore,
	dicts store.DictionaryStore,
	logger *slog.Logger,
) (LibraryService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", errors.New("cannot be nil"))
	}
	if langs == nil {
		return nil, domain.NewValidationError("langs", errors.New("cannot be nil"))
	}
	if dicts == nil {
		return nil, domain.NewValidationError("dicts", errors.New("cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &libraryServiceImpl{
		db:     db,
		langs:  langs,
		dicts:  dicts,
		logger: logger.With(slog.String("component", "library_service")),
	}, nil
}

func (s *libraryServiceImpl) ResolveSelection(
	ctx context.Context,
	languageID, dictionaryID *int64,
) (*Selection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sel *Selection
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		langs := s.langs.WithTx(tx)
		dicts := s.dicts.WithTx(tx)

		lang, err := s.resolveLanguage(ctx, langs, dicts, languageID, dictionaryID)
		if err != nil {
			return err
		}

		if dictionaryID != nil {
			dict, err := dicts.GetByID(ctx, *dictionaryID)
			switch {
			case err == nil && dict.LanguageID == lang.ID:
				sel = &Selection{Language: *lang, Dictionary: *dict}
				return nil
			case err != nil && !store.IsNotFoundError(err):
				return err
			}
			log.Debug("ignoring stale dictionary selection", slog.Int64("dictionary_id", *dictionaryID))
		}

		dict, err := dicts.FirstOrCreateDefault(ctx, lang.ID)
		if err != nil {
			return err
		}
		sel = &Selection{Language: *lang, Dictionary: *dict}
		return nil
	})
	if err != nil {
		log.Error("failed to resolve selection", slog.String("error", err.Error()))
		return nil, NewLibraryServiceError("resolve_selection", "failed to resolve language and dictionary", err)
	}

	log.Debug("selection resolved",
		slog.Int64("language_id", sel.Language.ID),
		slog.Int64("dictionary_id", sel.Dictionary.ID))
	return sel, nil
}

// resolveLanguage picks the requested language, else the language of the
// requested dictionary, else the first language by name, else the bootstrap
// default.
func (s *libraryServiceImpl) resolveLanguage(
	ctx context.Context,
	langs store.LanguageStore,
	dicts store.DictionaryStore,
	languageID, dictionaryID *int64,
) (*domain.Language, error) {
	if languageID != nil {
		lang, err := langs.GetByID(ctx, *languageID)
		if err == nil {
			return lang, nil
		}
		if !store.IsNotFoundError(err) {
			return nil, err
		}
	} else if dictionaryID != nil {
		if dict, err := dicts.GetByID(ctx, *dictionaryID); err == nil {
			return langs.GetByID(ctx, dict.LanguageID)
		}
	}

	all, err := langs.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > 0 {
		return &all[0], nil
	}
	return langs.FirstOrCreateDefault(ctx)
}

func (s *libraryServiceImpl) DeleteDictionary(ctx context.Context, id int64, mode DeleteMode) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.withCards && mode.moveTo == 0 {
		return 0, ErrInvalidDeleteMode
	}
	if !mode.withCards && mode.moveTo == id {
		return 0, ErrSameDictionary
	}

	var moved int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		dicts := s.dicts.WithTx(tx)

		if _, err := dicts.GetByID(ctx, id); err != nil {
			return err
		}
		if !mode.withCards {
			if _, err := dicts.GetByID(ctx, mode.moveTo); err != nil {
				return err
			}
			n, err := dicts.MoveAllCards(ctx, id, mode.moveTo)
			if err != nil {
				return err
			}
			moved = n
		}
		return dicts.Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return 0, err
		}
		log.Error("failed to delete dictionary",
			slog.String("error", err.Error()),
			slog.Int64("dictionary_id", id))
		return 0, NewLibraryServiceError("delete_dictionary", "failed to delete dictionary", err)
	}

	log.Info("dictionary deleted",
		slog.Int64("dictionary_id", id),
		slog.Bool("with_cards", mode.withCards),
		slog.Int64("moved_cards", moved))
	return moved, nil
}

func (s *libraryServiceImpl) DeleteLanguage(ctx context.Context, id int64) error {
	if err := s.langs.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewLibraryServiceError("delete_language", "failed to delete language", err)
	}
	return nil
}
