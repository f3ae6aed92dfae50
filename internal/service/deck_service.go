package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// CreateDeckParams carries the fields of a new deck. IsPublic defaults to false.
type CreateDeckParams struct {
	Name        string
	Description string
	IsPublic    *bool
	Tags        []string
}

// UpdateDeckParams carries optional deck changes. Nil means "leave unchanged";
// Name and Description are also left unchanged when empty.
type UpdateDeckParams struct {
	Name        *string
	Description *string
	IsPublic    *bool
	Tags        *[]string
}

// DeckService manages decks and their aggregate counters.
type DeckService interface {
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)
	CreateDeck(ctx context.Context, userID uuid.UUID, params CreateDeckParams) (*domain.Deck, error)
	UpdateDeck(ctx context.Context, userID, deckID uuid.UUID, params UpdateDeckParams) (*domain.Deck, error)

	// DeleteDeck removes the deck and all its cards atomically.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error

	// ListPublicDecks returns the most populated public decks.
	ListPublicDecks(ctx context.Context) ([]*domain.Deck, error)

	// CloneDeck copies a public deck and its cards into a new private deck owned by userID.
	CloneDeck(ctx context.Context, userID, sourceDeckID uuid.UUID) (*domain.Deck, error)

	// RecountDeck recomputes both counters from the cards table.
	RecountDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)
}

type deckServiceImpl struct {
	decks  DeckRepository
	cards  CardRepository
	guard  AccessGuard
	now    func() time.Time
	logger *slog.Logger
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	decks DeckRepository,
	cards CardRepository,
	guard AccessGuard,
	logger *slog.Logger,
) (DeckService, error) {
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if guard == nil {
		return nil, domain.NewValidationError("guard", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		decks:  decks,
		cards:  cards,
		guard:  guard,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("component", "deck_service")),
	}, nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	decks, err := s.decks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_decks", "failed to list decks", err)
	}
	return decks, nil
}

// GetDeck implements DeckService.GetDeck
// A private deck of another user is reported exactly like a missing one.
func (s *deckServiceImpl) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewServiceError("get_deck", "failed to get deck", err)
	}

	if !deck.VisibleTo(userID) {
		return nil, ErrDeckNotFound
	}
	return deck, nil
}

// CreateDeck implements DeckService.CreateDeck
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	params CreateDeckParams,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	isPublic := params.IsPublic != nil && *params.IsPublic
	deck, err := domain.NewDeck(userID, params.Name, params.Description, isPublic, params.Tags)
	if err != nil {
		return nil, invalidInput(err)
	}

	if err := s.decks.Create(ctx, deck); err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, classify("create_deck", "failed to save deck", err)
	}

	return deck, nil
}

// UpdateDeck implements DeckService.UpdateDeck
func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	params UpdateDeckParams,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.guard.Authorize(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if name := strings.TrimSpace(*params.Name); name != "" {
			deck.Name = name
		}
	}
	if params.Description != nil {
		if description := strings.TrimSpace(*params.Description); description != "" {
			deck.Description = description
		}
	}
	if params.IsPublic != nil {
		deck.IsPublic = *params.IsPublic
	}
	if params.Tags != nil {
		tags := *params.Tags
		if tags == nil {
			tags = []string{}
		}
		deck.Tags = tags
	}
	deck.Touch()

	if err := s.decks.Update(ctx, deck); err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, classify("update_deck", "failed to save deck", err)
	}

	return deck, nil
}

// DeleteDeck implements DeckService.DeleteDeck
// The deck row goes first; the cards foreign key is deferred to commit time, so a
// failure deleting the cards rolls the deck deletion back too.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return err
	}

	var removedCards int
	err := store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.decks.WithTx(tx).Delete(ctx, deckID); err != nil {
			return err
		}
		n, err := s.cards.WithTx(tx).DeleteByDeck(ctx, deckID)
		if err != nil {
			return err
		}
		removedCards = n
		return nil
	})
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		if errors.Is(err, store.ErrDeckNotFound) {
			return ErrDeckNotFound
		}
		return NewServiceError("delete_deck", "failed to delete deck and cards", err)
	}

	log.Info("deck deleted",
		slog.String("deck_id", deckID.String()),
		slog.Int("cards_deleted", removedCards))
	return nil
}

// ListPublicDecks implements DeckService.ListPublicDecks
func (s *deckServiceImpl) ListPublicDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks, err := s.decks.ListPublic(ctx, store.PublicDeckLimit)
	if err != nil {
		return nil, NewServiceError("list_public_decks", "failed to list public decks", err)
	}
	return decks, nil
}

// CloneDeck implements DeckService.CloneDeck
//
// Copied cards get fresh identities and scheduling defaults. TotalCards is set to
// the inserted count after the batch insert; CardsToReview is not touched.
func (s *deckServiceImpl) CloneDeck(ctx context.Context, userID, sourceDeckID uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	source, err := s.decks.GetByID(ctx, sourceDeckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrDeckNotFound
		}
		return nil, NewServiceError("clone_deck", "failed to load source deck", err)
	}
	if !source.IsPublic {
		return nil, ErrDeckNotFound
	}

	clone, err := source.Clone(userID)
	if err != nil {
		return nil, invalidInput(err)
	}
	if err := s.decks.Create(ctx, clone); err != nil {
		return nil, classify("clone_deck", "failed to save cloned deck", err)
	}

	sourceCards, err := s.cards.ListByDeck(ctx, source.ID)
	if err != nil {
		return nil, NewServiceError("clone_deck", "failed to load source cards", err)
	}

	if len(sourceCards) == 0 {
		log.Info("cloned empty deck",
			slog.String("source_deck_id", source.ID.String()),
			slog.String("deck_id", clone.ID.String()))
		return clone, nil
	}

	copies := make([]*domain.Card, 0, len(sourceCards))
	for _, c := range sourceCards {
		card, err := domain.NewCard(clone.ID, c.Front, c.Back)
		if err != nil {
			return nil, NewServiceError("clone_deck", "failed to copy card", err)
		}
		copies = append(copies, card)
	}

	inserted, err := s.cards.CreateMultiple(ctx, copies)
	if err != nil {
		return nil, NewServiceError("clone_deck", "failed to copy cards", err)
	}

	clone.TotalCards = inserted
	clone.Touch()
	if err := s.decks.Update(ctx, clone); err != nil {
		return nil, NewServiceError("clone_deck", "failed to update card count", err)
	}

	log.Info("deck cloned",
		slog.String("source_deck_id", source.ID.String()),
		slog.String("deck_id", clone.ID.String()),
		slog.Int("cards", inserted))
	return clone, nil
}

// RecountDeck implements DeckService.RecountDeck
func (s *deckServiceImpl) RecountDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return nil, err
	}

	deck, err := s.decks.Recount(ctx, deckID, s.now())
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrDeckNotFound
		}
		return nil, NewServiceError("recount_deck", "failed to recount deck", err)
	}
	return deck, nil
}
