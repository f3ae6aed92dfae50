package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRouter mounts the handlers the way the server does, with userID injected
// in place of the auth middleware. A nil UUID leaves the request anonymous.
func testRouter(userID uuid.UUID, decks *mockDeckService, cards *mockCardService) http.Handler {
	deckHandler := NewDeckHandler(decks, discardLogger())
	cardHandler := NewCardHandler(cards, discardLogger())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				req = req.WithContext(shared.WithUserID(req.Context(), userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/decks", func(r chi.Router) {
		r.Get("/", deckHandler.ListDecks)
		r.Post("/", deckHandler.CreateDeck)
		r.Get("/public", deckHandler.ListPublicDecks)
		r.Get("/{deckId}", deckHandler.GetDeck)
		r.Put("/{deckId}", deckHandler.UpdateDeck)
		r.Delete("/{deckId}", deckHandler.DeleteDeck)
		r.Post("/{deckId}/clone", deckHandler.CloneDeck)
		r.Post("/{deckId}/recount", deckHandler.RecountDeck)
		r.Route("/{deckId}/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.Post("/", cardHandler.CreateCard)
			r.Get("/due", cardHandler.ListDueCards)
			r.Post("/batch", cardHandler.CreateCards)
			r.Post("/generate", cardHandler.GenerateCards)
			r.Get("/{id}", cardHandler.GetCard)
			r.Put("/{id}", cardHandler.UpdateCard)
			r.Delete("/{id}", cardHandler.DeleteCard)
			r.Put("/{id}/stats", cardHandler.UpdateCardStats)
		})
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
