package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/generation"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// CardInput is the content of a card to create.
type CardInput struct {
	Front string
	Back  string
}

// UpdateCardParams carries optional content changes. A side is replaced only when
// its value is present and non-empty.
type UpdateCardParams struct {
	Front *string
	Back  *string
}

// CardStatsParams carries the result of a review.
type CardStatsParams struct {
	// Difficulty is the user's rating; it selects the review interval.
	Difficulty *float64

	// NextReview overrides the computed schedule when set.
	NextReview *time.Time
}

// CardService manages the cards of a deck. Every operation requires the user to
// own the deck.
type CardService interface {
	ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error)

	// ListDueCards returns the cards due now, soonest first.
	ListDueCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error)

	GetCard(ctx context.Context, userID, deckID, cardID uuid.UUID) (*domain.Card, error)
	CreateCard(ctx context.Context, userID, deckID uuid.UUID, input CardInput) (*domain.Card, error)

	// CreateCards inserts all inputs in one batch. An empty list is ErrInvalidInput.
	CreateCards(ctx context.Context, userID, deckID uuid.UUID, inputs []CardInput) ([]*domain.Card, error)

	UpdateCard(
		ctx context.Context,
		userID, deckID, cardID uuid.UUID,
		params UpdateCardParams,
	) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID, deckID, cardID uuid.UUID) error

	// UpdateCardStats records a review and reschedules the card.
	UpdateCardStats(
		ctx context.Context,
		userID, deckID, cardID uuid.UUID,
		params CardStatsParams,
	) (*domain.Card, error)

	// GenerateCards asks the configured generator for cards about text and adds
	// them to the deck.
	GenerateCards(ctx context.Context, userID, deckID uuid.UUID, text string) ([]*domain.Card, error)
}

type cardServiceImpl struct {
	cards     CardRepository
	decks     DeckRepository
	guard     AccessGuard
	policy    srs.Service
	generator generation.Generator
	now       func() time.Time
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// generator may be nil, in which case GenerateCards returns ErrGenerationDisabled.
// It returns an error if any of the other dependencies are nil.
func NewCardService(
	cards CardRepository,
	decks DeckRepository,
	guard AccessGuard,
	policy srs.Service,
	generator generation.Generator,
	logger *slog.Logger,
) (CardService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if guard == nil {
		return nil, domain.NewValidationError("guard", "cannot be nil", domain.ErrValidation)
	}
	if policy == nil {
		return nil, domain.NewValidationError("policy", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cards:     cards,
		decks:     decks,
		guard:     guard,
		policy:    policy,
		generator: generator,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return nil, err
	}

	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, NewServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

// ListDueCards implements CardService.ListDueCards
func (s *cardServiceImpl) ListDueCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return nil, err
	}

	cards, err := s.cards.ListDue(ctx, deckID, s.now())
	if err != nil {
		return nil, NewServiceError("list_due_cards", "failed to list due cards", err)
	}
	return cards, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(ctx context.Context, userID, deckID, cardID uuid.UUID) (*domain.Card, error) {
	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return nil, err
	}
	return s.loadCard(ctx, "get_card", deckID, cardID)
}

func (s *cardServiceImpl) loadCard(ctx context.Context, operation string, deckID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, deckID, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		return nil, NewServiceError(operation, "failed to load card", err)
	}
	return card, nil
}

// CreateCard implements CardService.CreateCard
// The card insert and the deck counter update are separate writes; a failed
// counter update leaves the card in place.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	input CardInput,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.guard.Authorize(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}

	card, err := domain.NewCard(deckID, input.Front, input.Back)
	if err != nil {
		return nil, invalidInput(err)
	}

	if err := s.cards.Create(ctx, card); err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, classify("create_card", "failed to save card", err)
	}

	deck.AddCards(1)
	deck.Touch()
	if err := s.decks.Update(ctx, deck); err != nil {
		log.Error("card created but deck counters not saved",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()),
			slog.String("card_id", card.ID.String()))
		return nil, NewServiceError("create_card", "failed to update deck counters", err)
	}

	return card, nil
}

// CreateCards implements CardService.CreateCards
func (s *cardServiceImpl) CreateCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	inputs []CardInput,
) ([]*domain.Card, error) {
	deck, err := s.guard.Authorize(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}
	return s.createCards(ctx, "create_cards", deck, inputs)
}

// createCards inserts inputs into deck and raises its counters by the number of
// rows the store reports as inserted.
func (s *cardServiceImpl) createCards(
	ctx context.Context,
	operation string,
	deck *domain.Deck,
	inputs []CardInput,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(inputs) == 0 {
		return nil, invalidInput(domain.NewValidationError("cards", "must be a non-empty list", nil))
	}

	cards := make([]*domain.Card, 0, len(inputs))
	for _, in := range inputs {
		card, err := domain.NewCard(deck.ID, in.Front, in.Back)
		if err != nil {
			return nil, invalidInput(err)
		}
		cards = append(cards, card)
	}

	inserted, err := s.cards.CreateMultiple(ctx, cards)
	if err != nil {
		log.Error("failed to create cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.Int("count", len(cards)))
		return nil, classify(operation, "failed to save cards", err)
	}

	deck.AddCards(inserted)
	deck.Touch()
	if err := s.decks.Update(ctx, deck); err != nil {
		log.Error("cards created but deck counters not saved",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.Int("inserted", inserted))
		return nil, NewServiceError(operation, "failed to update deck counters", err)
	}

	log.Info("cards created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("count", inserted))
	return cards, nil
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	params UpdateCardParams,
) (*domain.Card, error) {
	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return nil, err
	}

	card, err := s.loadCard(ctx, "update_card", deckID, cardID)
	if err != nil {
		return nil, err
	}

	var front, back string
	if params.Front != nil {
		front = *params.Front
	}
	if params.Back != nil {
		back = *params.Back
	}
	card.UpdateContent(front, back)

	if err := s.cards.Update(ctx, card); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		return nil, classify("update_card", "failed to save card", err)
	}
	return card, nil
}

// DeleteCard implements CardService.DeleteCard
// CardsToReview drops only when the card was due at the moment of deletion.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.guard.Authorize(ctx, deckID, userID)
	if err != nil {
		return err
	}

	card, err := s.loadCard(ctx, "delete_card", deckID, cardID)
	if err != nil {
		return err
	}
	wasDue := card.IsDue(s.now())

	if err := s.cards.Delete(ctx, deckID, cardID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrCardNotFound
		}
		return NewServiceError("delete_card", "failed to delete card", err)
	}

	deck.RemoveCard(wasDue)
	deck.Touch()
	if err := s.decks.Update(ctx, deck); err != nil {
		log.Error("card deleted but deck counters not saved",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()),
			slog.String("card_id", cardID.String()))
		return NewServiceError("delete_card", "failed to update deck counters", err)
	}

	return nil
}

// UpdateCardStats implements CardService.UpdateCardStats
//
// The deck's CardsToReview is decremented by one on every review, whether or not
// the card was due, using a single atomic UPDATE. RecountDeck repairs any drift.
func (s *cardServiceImpl) UpdateCardStats(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	params CardStatsParams,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guard.Authorize(ctx, deckID, userID); err != nil {
		return nil, err
	}

	card, err := s.loadCard(ctx, "update_card_stats", deckID, cardID)
	if err != nil {
		return nil, err
	}

	next := s.policy.NextReview(params.Difficulty, params.NextReview, s.now())
	card.RecordReview(params.Difficulty, next)

	if err := s.cards.Update(ctx, card); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		return nil, NewServiceError("update_card_stats", "failed to save card", err)
	}

	if err := s.decks.AdjustCardsToReview(ctx, deckID, -1); err != nil {
		log.Error("review saved but deck counter not decremented",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewServiceError("update_card_stats", "failed to update deck counters", err)
	}

	log.Debug("card reviewed",
		slog.String("card_id", cardID.String()),
		slog.Int("review_count", card.ReviewCount),
		slog.Time("next_review", card.NextReview))
	return card, nil
}

// GenerateCards implements CardService.GenerateCards
func (s *cardServiceImpl) GenerateCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	text string,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.generator == nil {
		return nil, ErrGenerationDisabled
	}

	deck, err := s.guard.Authorize(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}

	drafts, err := s.generator.GenerateCards(ctx, text)
	if err != nil {
		if errors.Is(err, generation.ErrEmptyText) || errors.Is(err, generation.ErrContentBlocked) {
			log.Warn("card generation rejected the text",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			return nil, invalidInput(err)
		}
		log.Error("card generation failed",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewServiceError("generate_cards", "generator failed", err)
	}
	if len(drafts) == 0 {
		return nil, NewServiceError("generate_cards", "generator returned no cards", generation.ErrInvalidResponse)
	}

	inputs := make([]CardInput, 0, len(drafts))
	for _, d := range drafts {
		inputs = append(inputs, CardInput{Front: d.Front, Back: d.Back})
	}
	return s.createCards(ctx, "generate_cards", deck, inputs)
}
