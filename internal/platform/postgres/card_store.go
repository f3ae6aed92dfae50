package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// cardInsertColumns is the number of bind parameters per card row.
const cardInsertColumns = 9

// maxCardsPerInsert keeps a single INSERT under Postgres's 65535 bind parameter limit.
const maxCardsPerInsert = 65535 / cardInsertColumns

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	n, err := s.CreateMultiple(ctx, []*domain.Card{card})
	if err != nil {
		return err
	}
	if n != 1 {
		return store.NewStoreError("card", "create", fmt.Sprintf("expected 1 row, inserted %d", n), nil)
	}
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
// Either every card is stored or none is. Batches larger than maxCardsPerInsert
// are split across several INSERTs inside one transaction; when the store is
// already bound to a transaction the caller's is used.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return 0, nil
	}

	for i, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during create",
				slog.String("error", err.Error()),
				slog.Int("index", i))
			return 0, err
		}
	}

	if len(cards) <= maxCardsPerInsert {
		return s.insertCards(ctx, cards)
	}

	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.insertChunks(ctx, cards)
	}

	var inserted int
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := &PostgresCardStore{db: tx, logger: s.logger}
		n, err := txStore.insertChunks(ctx, cards)
		inserted = n
		return err
	})
	if err != nil {
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) {
			return 0, err
		}
		return 0, store.NewStoreError("card", "create", "batch transaction failed", MapError(err))
	}
	return inserted, nil
}

// insertChunks writes cards in slices of at most maxCardsPerInsert rows.
func (s *PostgresCardStore) insertChunks(ctx context.Context, cards []*domain.Card) (int, error) {
	total := 0
	for start := 0; start < len(cards); start += maxCardsPerInsert {
		end := min(start+maxCardsPerInsert, len(cards))
		n, err := s.insertCards(ctx, cards[start:end])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// insertCards writes cards with one multi-row INSERT.
func (s *PostgresCardStore) insertCards(ctx context.Context, cards []*domain.Card) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildCardInsert(cards)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", cards[0].DeckID.String()),
			slog.Int("count", len(cards)))
		return 0, store.NewStoreError("card", "create", "insert failed", MapError(err))
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("card", "create", "failed to get rows affected", err)
	}

	log.Info("cards created",
		slog.String("deck_id", cards[0].DeckID.String()),
		slog.Int64("count", inserted))
	return int(inserted), nil
}

// buildCardInsert renders a multi-row INSERT for cards and its flattened arguments.
func buildCardInsert(cards []*domain.Card) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(cards)*cardInsertColumns)

	b.WriteString("INSERT INTO cards (")
	b.WriteString(cardColumns)
	b.WriteString(") VALUES ")

	for i, card := range cards {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := 0; j < cardInsertColumns; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*cardInsertColumns+j+1)
		}
		b.WriteString(")")

		args = append(args,
			card.ID,
			card.DeckID,
			card.Front,
			card.Back,
			card.NextReview,
			card.ReviewCount,
			card.Difficulty,
			card.CreatedAt,
			card.UpdatedAt,
		)
	}

	return b.String(), args
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND deck_id = $2`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, cardID, deckID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found",
				slog.String("card_id", cardID.String()),
				slog.String("deck_id", deckID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, store.NewStoreError("card", "get", "query failed", MapError(err))
	}

	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1`
	return s.queryCards(ctx, "list_by_deck", query, deckID)
}

// ListDue implements store.CardStore.ListDue
func (s *PostgresCardStore) ListDue(ctx context.Context, deckID uuid.UUID, now time.Time) ([]*domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = $1 AND next_review <= $2
		ORDER BY next_review ASC
	`
	return s.queryCards(ctx, "list_due", query, deckID, now)
}

func (s *PostgresCardStore) queryCards(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", operation, "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("card", operation, "scan failed", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning card rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", operation, "row iteration failed", err)
	}

	return cards, nil
}

// Update implements store.CardStore.Update
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET front = $1, back = $2, next_review = $3, review_count = $4,
		    difficulty = $5, updated_at = $6
		WHERE id = $7 AND deck_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.Front,
		card.Back,
		card.NextReview,
		card.ReviewCount,
		card.Difficulty,
		card.UpdatedAt,
		card.ID,
		card.DeckID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for update", slog.String("card_id", card.ID.String()))
		return err
	}

	log.Debug("card updated",
		slog.String("card_id", card.ID.String()),
		slog.Int("review_count", card.ReviewCount))
	return nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1 AND deck_id = $2`, cardID, deckID)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return store.NewStoreError("card", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for delete", slog.String("card_id", cardID.String()))
		return err
	}

	log.Info("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}

// DeleteByDeck implements store.CardStore.DeleteByDeck
func (s *PostgresCardStore) DeleteByDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = $1`, deckID)
	if err != nil {
		log.Error("failed to delete deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return 0, store.NewStoreError("card", "delete_by_deck", "delete failed", MapError(err))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("card", "delete_by_deck", "failed to get rows affected", err)
	}

	log.Info("deck cards deleted",
		slog.String("deck_id", deckID.String()),
		slog.Int64("count", deleted))
	return int(deleted), nil
}
