package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/generation"
	"github.com/stretchr/testify/mock"
)

// MockDeckRepository mocks the DeckRepository interface
type MockDeckRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockDeckRepository) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckRepository) ListPublic(ctx context.Context, limit int) ([]*domain.Deck, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckRepository) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckRepository) AdjustCardsToReview(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockDeckRepository) Recount(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Deck, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckRepository) WithTx(tx *sql.Tx) DeckRepository {
	return m
}

func (m *MockDeckRepository) DB() *sql.DB {
	return m.db
}

// MockCardRepository mocks the CardRepository interface
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) CreateMultiple(ctx context.Context, cards []*domain.Card) (int, error) {
	args := m.Called(ctx, cards)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) GetByID(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, deckID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListDue(ctx context.Context, deckID uuid.UUID, now time.Time) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, deckID, cardID uuid.UUID) error {
	args := m.Called(ctx, deckID, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteByDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	args := m.Called(ctx, deckID)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) WithTx(tx *sql.Tx) CardRepository {
	return m
}

// MockGenerator mocks the generation.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateCards(ctx context.Context, text string) ([]generation.CardDraft, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]generation.CardDraft), args.Error(1)
}
