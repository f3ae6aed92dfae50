package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/phrazzld/scry-decks/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// typeMap decodes Postgres arrays through database/sql.
var typeMap = pgtype.NewMap()

const deckColumns = `id, user_id, name, description, is_public, total_cards, cards_to_review, tags, created_at, updated_at`

const cardColumns = `id, deck_id, front, back, next_review, review_count, difficulty, created_at, updated_at`

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var tags []string
	err := row.Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.Description,
		&deck.IsPublic,
		&deck.TotalCards,
		&deck.CardsToReview,
		typeMap.SQLScanner(&tags),
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	deck.Tags = tags
	return &deck, nil
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.NextReview,
		&card.ReviewCount,
		&card.Difficulty,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
