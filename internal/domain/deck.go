package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CloneSuffix is appended to the name of a deck created by cloning.
const CloneSuffix = " (Clone)"

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckUserIDEmpty is returned when a deck has no owner.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck name is blank.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckDescriptionEmpty is returned when a deck description is blank.
	ErrDeckDescriptionEmpty = errors.New("deck description cannot be empty")
)

// Deck is a named, owned collection of flashcards.
//
// TotalCards and CardsToReview are advisory counters maintained by the card
// operations; they can drift from the real card rows and are repaired by a recount.
type Deck struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsPublic      bool      `json:"isPublic"`
	TotalCards    int       `json:"totalCards"`
	CardsToReview int       `json:"cardsToReview"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewDeck creates a new private-by-default Deck owned by userID with zeroed counters.
// Name and description are trimmed. Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name, description string, isPublic bool, tags []string) (*Deck, error) {
	now := time.Now().UTC()
	if tags == nil {
		tags = []string{}
	}

	deck := &Deck{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		IsPublic:    isPublic,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrDeckIDEmpty)
	}
	if d.UserID == uuid.Nil {
		return NewValidationError("userId", "cannot be empty", ErrDeckUserIDEmpty)
	}
	if strings.TrimSpace(d.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrDeckNameEmpty)
	}
	if strings.TrimSpace(d.Description) == "" {
		return NewValidationError("description", "cannot be empty", ErrDeckDescriptionEmpty)
	}
	return nil
}

// IsOwnedBy reports whether userID owns the deck.
func (d *Deck) IsOwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}

// VisibleTo reports whether userID may read the deck: owners always, anyone if public.
func (d *Deck) VisibleTo(userID uuid.UUID) bool {
	return d.IsPublic || d.IsOwnedBy(userID)
}

// Clone returns a new private deck owned by userID carrying this deck's description
// and tags, with the clone suffix on its name and zeroed counters.
func (d *Deck) Clone(userID uuid.UUID) (*Deck, error) {
	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)
	return NewDeck(userID, d.Name+CloneSuffix, d.Description, false, tags)
}

// Touch bumps UpdatedAt.
func (d *Deck) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// AddCards increments both counters by n; new cards are always due.
func (d *Deck) AddCards(n int) {
	d.TotalCards += n
	d.CardsToReview += n
}

// RemoveCard decrements the counters for a deleted card. TotalCards never goes below
// zero, and CardsToReview only drops when the card was due and the counter is positive.
func (d *Deck) RemoveCard(wasDue bool) {
	if d.TotalCards > 0 {
		d.TotalCards--
	}
	if wasDue && d.CardsToReview > 0 {
		d.CardsToReview--
	}
}
