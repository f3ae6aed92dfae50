package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDeckServiceValidatesDependencies(t *testing.T) {
	decks := &MockDeckRepository{}
	cards := &MockCardRepository{}
	guard, err := NewAccessGuard(decks, nil)
	require.NoError(t, err)

	_, err = NewDeckService(nil, cards, guard, nil)
	assert.True(t, domain.IsValidationError(err))
	_, err = NewDeckService(decks, nil, guard, nil)
	assert.True(t, domain.IsValidationError(err))
	_, err = NewDeckService(decks, cards, nil, nil)
	assert.True(t, domain.IsValidationError(err))
}

func TestGetDeck(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("owner sees private deck", func(t *testing.T) {
		f := newFixture(t)
		deck := testDeck(t, owner, false)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)

		got, err := f.deck.GetDeck(ctx, owner, deck.ID)

		require.NoError(t, err)
		assert.Equal(t, deck.ID, got.ID)
	})

	t.Run("anyone sees public deck", func(t *testing.T) {
		f := newFixture(t)
		deck := testDeck(t, owner, true)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)

		got, err := f.deck.GetDeck(ctx, stranger, deck.ID)

		require.NoError(t, err)
		assert.Equal(t, deck.ID, got.ID)
	})

	t.Run("private foreign and missing decks fail identically", func(t *testing.T) {
		f := newFixture(t)
		private := testDeck(t, owner, false)
		missingID := uuid.New()
		f.decks.On("GetByID", ctx, private.ID).Return(private, nil)
		f.decks.On("GetByID", ctx, missingID).Return(nil, store.ErrDeckNotFound)

		_, errPrivate := f.deck.GetDeck(ctx, stranger, private.ID)
		_, errMissing := f.deck.GetDeck(ctx, stranger, missingID)

		assert.ErrorIs(t, errPrivate, ErrDeckNotFound)
		assert.Equal(t, errPrivate, errMissing)
	})
}

func TestCreateDeck(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("defaults", func(t *testing.T) {
		f := newFixture(t)
		f.decks.On("Create", ctx, mock.AnythingOfType("*domain.Deck")).Return(nil)

		deck, err := f.deck.CreateDeck(ctx, owner, CreateDeckParams{Name: "Go", Description: "Basics"})

		require.NoError(t, err)
		assert.Equal(t, owner, deck.UserID)
		assert.False(t, deck.IsPublic)
		assert.Equal(t, 0, deck.TotalCards)
		assert.Equal(t, 0, deck.CardsToReview)
		assert.Equal(t, []string{}, deck.Tags)
	})

	t.Run("public with tags", func(t *testing.T) {
		f := newFixture(t)
		f.decks.On("Create", ctx, mock.AnythingOfType("*domain.Deck")).Return(nil)

		deck, err := f.deck.CreateDeck(ctx, owner, CreateDeckParams{
			Name:        "Go",
			Description: "Basics",
			IsPublic:    boolPtr(true),
			Tags:        []string{"lang"},
		})

		require.NoError(t, err)
		assert.True(t, deck.IsPublic)
		assert.Equal(t, []string{"lang"}, deck.Tags)
	})

	t.Run("missing name is invalid input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.deck.CreateDeck(ctx, owner, CreateDeckParams{Description: "Basics"})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrDeckNameEmpty)
	})
}

func TestUpdateDeck(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("applies only provided non-empty fields", func(t *testing.T) {
		f := newFixture(t)
		deck := testDeck(t, owner, true)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)
		f.decks.On("Update", ctx, deck).Return(nil)

		got, err := f.deck.UpdateDeck(ctx, owner, deck.ID, UpdateDeckParams{
			Name:        strPtr("Renamed"),
			Description: strPtr(""),
			IsPublic:    boolPtr(false),
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, "A test deck", got.Description)
		assert.False(t, got.IsPublic, "explicit false must flip visibility")
		assert.Equal(t, []string{"test"}, got.Tags)
	})

	t.Run("empty tag list clears tags", func(t *testing.T) {
		f := newFixture(t)
		deck := testDeck(t, owner, false)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)
		f.decks.On("Update", ctx, deck).Return(nil)

		empty := []string{}
		got, err := f.deck.UpdateDeck(ctx, owner, deck.ID, UpdateDeckParams{Tags: &empty})

		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})

	t.Run("public deck is not writable by others", func(t *testing.T) {
		f := newFixture(t)
		deck := testDeck(t, owner, true)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)

		_, err := f.deck.UpdateDeck(ctx, uuid.New(), deck.ID, UpdateDeckParams{Name: strPtr("Hijack")})

		assert.ErrorIs(t, err, ErrNotFound)
		f.decks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteDeck(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("deletes deck and cards in one transaction", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		f := newFixture(t)
		f.decks.db = db
		deck := testDeck(t, owner, false)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)
		f.decks.On("Delete", ctx, deck.ID).Return(nil)
		f.cards.On("DeleteByDeck", ctx, deck.ID).Return(3, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		require.NoError(t, f.deck.DeleteDeck(ctx, owner, deck.ID))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("card deletion failure rolls back the deck deletion", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		f := newFixture(t)
		f.decks.db = db
		deck := testDeck(t, owner, false)
		cardErr := errors.New("cards table locked")
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)
		f.decks.On("Delete", ctx, deck.ID).Return(nil)
		f.cards.On("DeleteByDeck", ctx, deck.ID).Return(0, cardErr)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		err = f.deck.DeleteDeck(ctx, owner, deck.ID)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.ErrorIs(t, err, cardErr)
		assert.NoError(t, sqlMock.ExpectationsWereMet(), "transaction must be rolled back, not committed")
	})

	t.Run("non-owner gets not found and nothing runs", func(t *testing.T) {
		f := newFixture(t)
		deck := testDeck(t, owner, true)
		f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)

		err := f.deck.DeleteDeck(ctx, uuid.New(), deck.ID)

		assert.ErrorIs(t, err, ErrNotFound)
		f.decks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestListPublicDecksUsesCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	public := []*domain.Deck{testDeck(t, uuid.New(), true)}
	f.decks.On("ListPublic", ctx, store.PublicDeckLimit).Return(public, nil)

	got, err := f.deck.ListPublicDecks(ctx)

	require.NoError(t, err)
	assert.Equal(t, public, got)
	assert.Equal(t, 20, store.PublicDeckLimit)
}

func TestCloneDeck(t *testing.T) {
	ctx := context.Background()
	requester := uuid.New()

	t.Run("copies cards with fresh identity and defaults", func(t *testing.T) {
		f := newFixture(t)
		source := testDeck(t, uuid.New(), true)
		source.Name = "Capitals"
		reviewed := testCard(t, source.ID, fixedNow.Add(72*time.Hour))
		reviewed.ReviewCount = 5
		reviewed.Difficulty = 1
		sourceCards := []*domain.Card{reviewed, testCard(t, source.ID, fixedNow)}

		var inserted []*domain.Card
		f.decks.On("GetByID", ctx, source.ID).Return(source, nil)
		f.decks.On("Create", ctx, mock.AnythingOfType("*domain.Deck")).Return(nil)
		f.cards.On("ListByDeck", ctx, source.ID).Return(sourceCards, nil)
		f.cards.On("CreateMultiple", ctx, mock.AnythingOfType("[]*domain.Card")).
			Run(func(args mock.Arguments) { inserted = args.Get(1).([]*domain.Card) }).
			Return(2, nil)
		f.decks.On("Update", ctx, mock.AnythingOfType("*domain.Deck")).Return(nil)

		clone, err := f.deck.CloneDeck(ctx, requester, source.ID)

		require.NoError(t, err)
		assert.Equal(t, "Capitals (Clone)", clone.Name)
		assert.False(t, clone.IsPublic)
		assert.Equal(t, requester, clone.UserID)
		assert.Equal(t, source.Tags, clone.Tags)
		assert.Equal(t, 2, clone.TotalCards)
		assert.Equal(t, 0, clone.CardsToReview)

		require.Len(t, inserted, 2)
		for i, c := range inserted {
			assert.NotEqual(t, sourceCards[i].ID, c.ID)
			assert.Equal(t, clone.ID, c.DeckID)
			assert.Equal(t, 0, c.ReviewCount)
			assert.Equal(t, domain.DefaultDifficulty, c.Difficulty)
			assert.Equal(t, sourceCards[i].Front, c.Front)
		}
	})

	t.Run("empty source makes no insert call", func(t *testing.T) {
		f := newFixture(t)
		source := testDeck(t, uuid.New(), true)
		f.decks.On("GetByID", ctx, source.ID).Return(source, nil)
		f.decks.On("Create", ctx, mock.AnythingOfType("*domain.Deck")).Return(nil)
		f.cards.On("ListByDeck", ctx, source.ID).Return([]*domain.Card{}, nil)

		clone, err := f.deck.CloneDeck(ctx, requester, source.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, clone.TotalCards)
		f.cards.AssertNotCalled(t, "CreateMultiple", mock.Anything, mock.Anything)
		f.decks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("private or missing source is not found", func(t *testing.T) {
		f := newFixture(t)
		private := testDeck(t, requester, false)
		missingID := uuid.New()
		f.decks.On("GetByID", ctx, private.ID).Return(private, nil)
		f.decks.On("GetByID", ctx, missingID).Return(nil, store.ErrDeckNotFound)

		_, errPrivate := f.deck.CloneDeck(ctx, requester, private.ID)
		_, errMissing := f.deck.CloneDeck(ctx, requester, missingID)

		assert.ErrorIs(t, errPrivate, ErrDeckNotFound)
		assert.ErrorIs(t, errMissing, ErrDeckNotFound)
		f.decks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRecountDeck(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	f := newFixture(t)

	deck := testDeck(t, owner, false)
	deck.CardsToReview = -3
	repaired := *deck
	repaired.TotalCards = 4
	repaired.CardsToReview = 2

	f.decks.On("GetByID", ctx, deck.ID).Return(deck, nil)
	f.decks.On("Recount", ctx, deck.ID, fixedNow).Return(&repaired, nil)

	got, err := f.deck.RecountDeck(ctx, owner, deck.ID)

	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalCards)
	assert.Equal(t, 2, got.CardsToReview)
}
