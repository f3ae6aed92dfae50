package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// DeckRepository is the deck persistence the services depend on.
type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)
	ListPublic(ctx context.Context, limit int) ([]*domain.Deck, error)
	Update(ctx context.Context, deck *domain.Deck) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustCardsToReview(ctx context.Context, id uuid.UUID, delta int) error
	Recount(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Deck, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) DeckRepository

	// DB returns the connection pool transactions are started on.
	DB() *sql.DB
}

// CardRepository is the card persistence the services depend on.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	CreateMultiple(ctx context.Context, cards []*domain.Card) (int, error)
	GetByID(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error)
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)
	ListDue(ctx context.Context, deckID uuid.UUID, now time.Time) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, deckID, cardID uuid.UUID) error
	DeleteByDeck(ctx context.Context, deckID uuid.UUID) (int, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) CardRepository
}

// NewDeckRepositoryAdapter lets a store.DeckStore be used where a DeckRepository
// is expected. db is the pool used to begin transactions.
func NewDeckRepositoryAdapter(deckStore store.DeckStore, db *sql.DB) DeckRepository {
	return &deckRepositoryAdapter{DeckStore: deckStore, db: db}
}

type deckRepositoryAdapter struct {
	store.DeckStore
	db *sql.DB
}

// WithTx implements DeckRepository.WithTx
func (a *deckRepositoryAdapter) WithTx(tx *sql.Tx) DeckRepository {
	return &deckRepositoryAdapter{DeckStore: a.DeckStore.WithTx(tx), db: a.db}
}

// DB implements DeckRepository.DB
func (a *deckRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewCardRepositoryAdapter lets a store.CardStore be used where a CardRepository
// is expected.
func NewCardRepositoryAdapter(cardStore store.CardStore) CardRepository {
	return &cardRepositoryAdapter{CardStore: cardStore}
}

type cardRepositoryAdapter struct {
	store.CardStore
}

// WithTx implements CardRepository.WithTx
func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{CardStore: a.CardStore.WithTx(tx)}
}
