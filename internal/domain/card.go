package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDifficulty is the difficulty assigned to a card that has never been rated.
const DefaultDifficulty = 2.5

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card has no parent deck.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front side is blank.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card's back side is blank.
	ErrCardBackEmpty = errors.New("card back cannot be empty")
)

// Card is a two-sided flashcard belonging to exactly one deck.
type Card struct {
	ID          uuid.UUID `json:"id"`
	DeckID      uuid.UUID `json:"deckId"`
	Front       string    `json:"front"`
	Back        string    `json:"back"`
	NextReview  time.Time `json:"nextReview"`
	ReviewCount int       `json:"reviewCount"`
	Difficulty  float64   `json:"difficulty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCard creates a new Card in deckID with scheduling defaults: due immediately,
// never reviewed, default difficulty. Front and back are trimmed.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, front, back string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:         uuid.New(),
		DeckID:     deckID,
		Front:      strings.TrimSpace(front),
		Back:       strings.TrimSpace(back),
		NextReview: now,
		Difficulty: DefaultDifficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrCardIDEmpty)
	}
	if c.DeckID == uuid.Nil {
		return NewValidationError("deckId", "cannot be empty", ErrCardDeckIDEmpty)
	}
	if strings.TrimSpace(c.Front) == "" {
		return NewValidationError("front", "cannot be empty", ErrCardFrontEmpty)
	}
	if strings.TrimSpace(c.Back) == "" {
		return NewValidationError("back", "cannot be empty", ErrCardBackEmpty)
	}
	return nil
}

// IsDue reports whether the card is due for review at now.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}

// UpdateContent replaces the front and/or back. Empty values leave the side unchanged.
func (c *Card) UpdateContent(front, back string) {
	if front = strings.TrimSpace(front); front != "" {
		c.Front = front
	}
	if back = strings.TrimSpace(back); back != "" {
		c.Back = back
	}
	c.UpdatedAt = time.Now().UTC()
}

// RecordReview counts one review and applies the new schedule. A nil difficulty
// keeps the current rating.
func (c *Card) RecordReview(difficulty *float64, nextReview time.Time) {
	c.ReviewCount++
	if difficulty != nil {
		c.Difficulty = *difficulty
	}
	c.NextReview = nextReview
	c.UpdatedAt = time.Now().UTC()
}
