package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
)

// CardHandler handles card-related HTTP requests. Every route is nested under a deck.
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cards service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /api/decks/{deckId}/cards
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	cards, err := h.cards.ListCards(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, orEmptyCards(cards))
}

// ListDueCards handles GET /api/decks/{deckId}/cards/due
func (h *CardHandler) ListDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	cards, err := h.cards.ListDueCards(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, orEmptyCards(cards))
}

// GetCard handles GET /api/decks/{deckId}/cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID, paramID)
	if !ok {
		return
	}

	card, err := h.cards.GetCard(r.Context(), userID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// CreateCard handles POST /api/decks/{deckId}/cards
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	var req CardRequest
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), userID, ids[0], service.CardInput{
		Front: req.Front,
		Back:  req.Back,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// CreateCards handles POST /api/decks/{deckId}/cards/batch
func (h *CardHandler) CreateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	var req BatchCreateCardsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inputs := make([]service.CardInput, 0, len(req.Cards))
	for _, c := range req.Cards {
		inputs = append(inputs, service.CardInput{Front: c.Front, Back: c.Back})
	}

	cards, err := h.cards.CreateCards(r.Context(), userID, ids[0], inputs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("cards created",
		slog.String("deck_id", ids[0].String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, cards)
}

// GenerateCards handles POST /api/decks/{deckId}/cards/generate
func (h *CardHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	var req GenerateCardsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cards, err := h.cards.GenerateCards(r.Context(), userID, ids[0], req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cards)
}

// UpdateCard handles PUT /api/decks/{deckId}/cards/{id}
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID, paramID)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), userID, ids[0], ids[1], service.UpdateCardParams{
		Front: req.Front,
		Back:  req.Back,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/decks/{deckId}/cards/{id}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID, paramID)
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(r.Context(), userID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Card deleted")
}

// UpdateCardStats handles PUT /api/decks/{deckId}/cards/{id}/stats
func (h *CardHandler) UpdateCardStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID, paramID)
	if !ok {
		return
	}

	var req CardStatsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cards.UpdateCardStats(r.Context(), userID, ids[0], ids[1], service.CardStatsParams{
		Difficulty: req.Difficulty,
		NextReview: req.NextReview,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}
