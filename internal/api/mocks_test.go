package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockDeckService struct {
	mock.Mock
}

func (m *mockDeckService) deck(args mock.Arguments) (*domain.Deck, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *mockDeckService) decks(args mock.Arguments) ([]*domain.Deck, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *mockDeckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	return m.decks(m.Called(ctx, userID))
}

func (m *mockDeckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	return m.deck(m.Called(ctx, userID, deckID))
}

func (m *mockDeckService) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	params service.CreateDeckParams,
) (*domain.Deck, error) {
	return m.deck(m.Called(ctx, userID, params))
}

func (m *mockDeckService) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	params service.UpdateDeckParams,
) (*domain.Deck, error) {
	return m.deck(m.Called(ctx, userID, deckID, params))
}

func (m *mockDeckService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	return m.Called(ctx, userID, deckID).Error(0)
}

func (m *mockDeckService) ListPublicDecks(ctx context.Context) ([]*domain.Deck, error) {
	return m.decks(m.Called(ctx))
}

func (m *mockDeckService) CloneDeck(ctx context.Context, userID, sourceDeckID uuid.UUID) (*domain.Deck, error) {
	return m.deck(m.Called(ctx, userID, sourceDeckID))
}

func (m *mockDeckService) RecountDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	return m.deck(m.Called(ctx, userID, deckID))
}

type mockCardService struct {
	mock.Mock
}

func (m *mockCardService) card(args mock.Arguments) (*domain.Card, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardService) cards(args mock.Arguments) ([]*domain.Card, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *mockCardService) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	return m.cards(m.Called(ctx, userID, deckID))
}

func (m *mockCardService) ListDueCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	return m.cards(m.Called(ctx, userID, deckID))
}

func (m *mockCardService) GetCard(ctx context.Context, userID, deckID, cardID uuid.UUID) (*domain.Card, error) {
	return m.card(m.Called(ctx, userID, deckID, cardID))
}

func (m *mockCardService) CreateCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	input service.CardInput,
) (*domain.Card, error) {
	return m.card(m.Called(ctx, userID, deckID, input))
}

func (m *mockCardService) CreateCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	inputs []service.CardInput,
) ([]*domain.Card, error) {
	return m.cards(m.Called(ctx, userID, deckID, inputs))
}

func (m *mockCardService) UpdateCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	params service.UpdateCardParams,
) (*domain.Card, error) {
	return m.card(m.Called(ctx, userID, deckID, cardID, params))
}

func (m *mockCardService) DeleteCard(ctx context.Context, userID, deckID, cardID uuid.UUID) error {
	return m.Called(ctx, userID, deckID, cardID).Error(0)
}

func (m *mockCardService) UpdateCardStats(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	params service.CardStatsParams,
) (*domain.Card, error) {
	return m.card(m.Called(ctx, userID, deckID, cardID, params))
}

func (m *mockCardService) GenerateCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	text string,
) ([]*domain.Card, error) {
	return m.cards(m.Called(ctx, userID, deckID, text))
}
