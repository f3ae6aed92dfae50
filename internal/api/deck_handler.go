package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
)

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	decks  service.DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /api/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	decks, err := h.decks.ListDecks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, orEmptyDecks(decks))
}

// ListPublicDecks handles GET /api/decks/public
func (h *DeckHandler) ListPublicDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	if _, ok := requireUserID(w, r, log); !ok {
		return
	}

	decks, err := h.decks.ListPublicDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, orEmptyDecks(decks))
}

// GetDeck handles GET /api/decks/{deckId}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// CreateDeck handles POST /api/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateDeckRequest
	if !decodeBody(w, r, &req) {
		return
	}

	deck, err := h.decks.CreateDeck(r.Context(), userID, service.CreateDeckParams{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// UpdateDeck handles PUT /api/decks/{deckId}
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if !decodeBody(w, r, &req) {
		return
	}

	deck, err := h.decks.UpdateDeck(r.Context(), userID, ids[0], service.UpdateDeckParams{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /api/decks/{deckId}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(r.Context(), userID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Deck deleted")
}

// CloneDeck handles POST /api/decks/{deckId}/clone
func (h *DeckHandler) CloneDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	clone, err := h.decks.CloneDeck(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("deck cloned",
		slog.String("source_deck_id", ids[0].String()),
		slog.String("deck_id", clone.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, clone)
}

// RecountDeck handles POST /api/decks/{deckId}/recount
func (h *DeckHandler) RecountDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	ids, ok := requirePathUUIDs(w, r, log, paramDeckID)
	if !ok {
		return
	}

	deck, err := h.decks.RecountDeck(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}
