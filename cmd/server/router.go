package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/scry-decks/internal/api"
	apiMiddleware "github.com/phrazzld/scry-decks/internal/api/middleware"
)

// setupRouter creates the router with middleware and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		if app.rateLimiter != nil {
			r.Use(app.rateLimiter.Handler)
		}
		r.Use(authMiddleware.Authenticate)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Get("/public", deckHandler.ListPublicDecks)

			r.Route("/{deckId}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Put("/", deckHandler.UpdateDeck)
				r.Delete("/", deckHandler.DeleteDeck)
				r.Post("/clone", deckHandler.CloneDeck)
				r.Post("/recount", deckHandler.RecountDeck)

				r.Route("/cards", func(r chi.Router) {
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
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
