package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// PublicDeckLimit caps the public browsing listing.
const PublicDeckLimit = 20

// DeckStore defines the interface for deck persistence.
type DeckStore interface {
	// Create inserts a new deck. The deck is validated first.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck regardless of owner or visibility.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByOwner returns every deck owned by userID, newest first.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// ListPublic returns up to limit public decks ordered by total_cards descending.
	ListPublic(ctx context.Context, limit int) ([]*domain.Deck, error)

	// Update overwrites the mutable fields of an existing deck, counters included.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes the deck row. Cards are not touched; callers remove them in
	// the same transaction.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustCardsToReview adds delta to cards_to_review in a single statement,
	// without reading the deck first. No lower bound is enforced.
	AdjustCardsToReview(ctx context.Context, id uuid.UUID, delta int) error

	// Recount recomputes total_cards and cards_to_review from the cards table,
	// counting cards due at now, and returns the refreshed deck.
	Recount(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Deck, error)

	// WithTx returns a DeckStore bound to tx.
	WithTx(tx *sql.Tx) DeckStore
}
