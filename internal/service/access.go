package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// DeckAccess is the outcome of an ownership check. Deck is set only when Granted.
type DeckAccess struct {
	Deck    *domain.Deck
	Granted bool
}

// AccessGuard decides whether a user may act on a deck as its owner.
type AccessGuard interface {
	// Check looks the deck up and reports whether userID owns it. An absent deck
	// and a foreign deck both yield Granted=false; the error is reserved for
	// unexpected failures.
	Check(ctx context.Context, deckID, userID uuid.UUID) (DeckAccess, error)

	// Authorize returns the owned deck or ErrAccessDenied.
	Authorize(ctx context.Context, deckID, userID uuid.UUID) (*domain.Deck, error)
}

type accessGuard struct {
	decks  DeckRepository
	logger *slog.Logger
}

// NewAccessGuard creates an AccessGuard backed by decks.
func NewAccessGuard(decks DeckRepository, logger *slog.Logger) (AccessGuard, error) {
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &accessGuard{
		decks:  decks,
		logger: logger.With(slog.String("component", "access_guard")),
	}, nil
}

// Check implements AccessGuard.Check
func (g *accessGuard) Check(ctx context.Context, deckID, userID uuid.UUID) (DeckAccess, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	deck, err := g.decks.GetByID(ctx, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return DeckAccess{}, nil
		}
		log.Error("failed to load deck for access check",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return DeckAccess{}, NewServiceError("check_access", "failed to load deck", err)
	}

	if !deck.IsOwnedBy(userID) {
		log.Debug("deck access denied",
			slog.String("deck_id", deckID.String()),
			slog.String("user_id", userID.String()))
		return DeckAccess{}, nil
	}

	return DeckAccess{Deck: deck, Granted: true}, nil
}

// Authorize implements AccessGuard.Authorize
func (g *accessGuard) Authorize(ctx context.Context, deckID, userID uuid.UUID) (*domain.Deck, error) {
	access, err := g.Check(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}
	if !access.Granted {
		return nil, ErrAccessDenied
	}
	return access.Deck, nil
}
