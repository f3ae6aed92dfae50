package generation

import (
	"context"
)

// CardDraft is a generated front/back pair not yet bound to a deck.
type CardDraft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Generator defines the interface for generating flashcards from text.
// It is the boundary between the deck services and an external LLM.
type Generator interface {
	// GenerateCards turns source text into flashcard drafts.
	// Errors wrap one of the sentinel errors in this package.
	GenerateCards(ctx context.Context, text string) ([]CardDraft, error)
}
