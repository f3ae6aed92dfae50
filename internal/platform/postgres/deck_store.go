package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.DeckStore.Create
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		INSERT INTO decks (` + deckColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.UserID,
		deck.Name,
		deck.Description,
		deck.IsPublic,
		deck.TotalCards,
		deck.CardsToReview,
		nonNilTags(deck.Tags),
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.String("user_id", deck.UserID.String()))
		return store.NewStoreError("deck", "create", "insert failed", MapError(err))
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()))
	return nil
}

// GetByID implements store.DeckStore.GetByID
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "query failed", MapError(err))
	}

	return deck, nil
}

// ListByOwner implements store.DeckStore.ListByOwner
func (s *PostgresDeckStore) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	query := `
		SELECT ` + deckColumns + `
		FROM decks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return s.queryDecks(ctx, "list_by_owner", query, userID)
}

// ListPublic implements store.DeckStore.ListPublic
func (s *PostgresDeckStore) ListPublic(ctx context.Context, limit int) ([]*domain.Deck, error) {
	if limit <= 0 {
		limit = store.PublicDeckLimit
	}
	query := `
		SELECT ` + deckColumns + `
		FROM decks
		WHERE is_public = TRUE
		ORDER BY total_cards DESC, created_at DESC
		LIMIT $1
	`
	return s.queryDecks(ctx, "list_public", query, limit)
}

func (s *PostgresDeckStore) queryDecks(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query decks",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", operation, "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	decks := []*domain.Deck{}
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("deck", operation, "scan failed", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning deck rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", operation, "row iteration failed", err)
	}

	log.Debug("decks listed",
		slog.String("operation", operation),
		slog.Int("count", len(decks)))
	return decks, nil
}

// Update implements store.DeckStore.Update
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		UPDATE decks
		SET name = $1, description = $2, is_public = $3, total_cards = $4,
		    cards_to_review = $5, tags = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		deck.Name,
		deck.Description,
		deck.IsPublic,
		deck.TotalCards,
		deck.CardsToReview,
		nonNilTags(deck.Tags),
		deck.UpdatedAt,
		deck.ID,
	)
	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		log.Debug("deck not found for update", slog.String("deck_id", deck.ID.String()))
		return err
	}

	log.Debug("deck updated",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("total_cards", deck.TotalCards),
		slog.Int("cards_to_review", deck.CardsToReview))
	return nil
}

// Delete implements store.DeckStore.Delete
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return store.NewStoreError("deck", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		log.Debug("deck not found for delete", slog.String("deck_id", id.String()))
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

// AdjustCardsToReview implements store.DeckStore.AdjustCardsToReview
func (s *PostgresDeckStore) AdjustCardsToReview(ctx context.Context, id uuid.UUID, delta int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE decks
		SET cards_to_review = cards_to_review + $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to adjust cards to review",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()),
			slog.Int("delta", delta))
		return store.NewStoreError("deck", "adjust_cards_to_review", "update failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrDeckNotFound)
}

// Recount implements store.DeckStore.Recount
func (s *PostgresDeckStore) Recount(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE decks d
		SET total_cards = (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id),
		    cards_to_review = (
		        SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id AND c.next_review <= $2
		    ),
		    updated_at = $2
		WHERE d.id = $1
		RETURNING ` + deckColumns

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to recount deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "recount", "update failed", MapError(err))
	}

	log.Info("deck counters recomputed",
		slog.String("deck_id", id.String()),
		slog.Int("total_cards", deck.TotalCards),
		slog.Int("cards_to_review", deck.CardsToReview))
	return deck, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
