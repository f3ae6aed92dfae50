package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	decks *MockDeckRepository
	cards *MockCardRepository
	gen   *MockGenerator
	guard AccessGuard
	deck  DeckService
	card  CardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		decks: &MockDeckRepository{},
		cards: &MockCardRepository{},
		gen:   &MockGenerator{},
	}

	guard, err := NewAccessGuard(f.decks, nil)
	require.NoError(t, err)
	f.guard = guard

	deckSvc, err := NewDeckService(f.decks, f.cards, guard, nil)
	require.NoError(t, err)
	deckSvc.(*deckServiceImpl).now = func() time.Time { return fixedNow }
	f.deck = deckSvc

	cardSvc, err := NewCardService(f.cards, f.decks, guard, srs.NewDefaultService(), f.gen, nil)
	require.NoError(t, err)
	cardSvc.(*cardServiceImpl).now = func() time.Time { return fixedNow }
	f.card = cardSvc

	t.Cleanup(func() {
		f.decks.AssertExpectations(t)
		f.cards.AssertExpectations(t)
		f.gen.AssertExpectations(t)
	})
	return f
}

func testDeck(t *testing.T, owner uuid.UUID, public bool) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(owner, "Deck", "A test deck", public, []string{"test"})
	require.NoError(t, err)
	return deck
}

func testCard(t *testing.T, deckID uuid.UUID, nextReview time.Time) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, "front", "back")
	require.NoError(t, err)
	card.NextReview = nextReview
	return card
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
