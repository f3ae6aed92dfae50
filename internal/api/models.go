package api

import (
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// CreateDeckRequest is the body of POST /api/decks.
type CreateDeckRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	IsPublic    *bool    `json:"isPublic"`
	Tags        []string `json:"tags"`
}

// UpdateDeckRequest is the body of PUT /api/decks/{id}. Absent fields are left
// unchanged; an empty tags array clears the tags.
type UpdateDeckRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	IsPublic    *bool     `json:"isPublic"`
	Tags        *[]string `json:"tags"`
}

// CardRequest is the content of a single card.
type CardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"  validate:"required"`
}

// BatchCreateCardsRequest is the body of POST /api/decks/{deckId}/cards/batch.
type BatchCreateCardsRequest struct {
	Cards []CardRequest `json:"cards" validate:"dive"`
}

// UpdateCardRequest is the body of PUT /api/decks/{deckId}/cards/{id}. Absent or
// empty sides are left unchanged.
type UpdateCardRequest struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// CardStatsRequest is the body of PUT /api/decks/{deckId}/cards/{id}/stats.
type CardStatsRequest struct {
	Difficulty *float64   `json:"difficulty"`
	NextReview *time.Time `json:"nextReview"`
}

// GenerateCardsRequest is the body of POST /api/decks/{deckId}/cards/generate.
type GenerateCardsRequest struct {
	Text string `json:"text"`
}

// orEmptyDecks keeps list responses as JSON arrays rather than null.
func orEmptyDecks(decks []*domain.Deck) []*domain.Deck {
	if decks == nil {
		return []*domain.Deck{}
	}
	return decks
}

func orEmptyCards(cards []*domain.Card) []*domain.Card {
	if cards == nil {
		return []*domain.Card{}
	}
	return cards
}
