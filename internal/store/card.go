package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// CardStore defines the interface for card persistence.
type CardStore interface {
	// Create inserts a single card. The card is validated first.
	Create(ctx context.Context, card *domain.Card) error

	// CreateMultiple inserts all cards atomically and returns the number of rows
	// written. An empty slice is a no-op returning 0.
	CreateMultiple(ctx context.Context, cards []*domain.Card) (int, error)

	// GetByID retrieves a card only if it belongs to deckID.
	// Returns ErrCardNotFound when the card is absent or sits in another deck.
	GetByID(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error)

	// ListByDeck returns every card of the deck in no particular order.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// ListDue returns cards of the deck with next_review <= now, soonest first.
	ListDue(ctx context.Context, deckID uuid.UUID, now time.Time) ([]*domain.Card, error)

	// Update overwrites content and scheduling fields of an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes one card of the deck.
	// Returns ErrCardNotFound when the card is absent or sits in another deck.
	Delete(ctx context.Context, deckID, cardID uuid.UUID) error

	// DeleteByDeck removes every card of the deck and returns how many went.
	DeleteByDeck(ctx context.Context, deckID uuid.UUID) (int, error)

	// WithTx returns a CardStore bound to tx.
	WithTx(tx *sql.Tx) CardStore
}
