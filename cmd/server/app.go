package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	apiMiddleware "github.com/phrazzld/scry-decks/internal/api/middleware"
	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/generation"
	"github.com/phrazzld/scry-decks/internal/platform/gemini"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/auth"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	deckService service.DeckService
	cardService service.CardService

	// rateLimiter is nil when rate limiting is disabled.
	rateLimiter *apiMiddleware.RateLimiter
}

// newApplication wires stores, services and the optional card generator.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	deckRepo := service.NewDeckRepositoryAdapter(postgres.NewPostgresDeckStore(db, logger), db)
	cardRepo := service.NewCardRepositoryAdapter(postgres.NewPostgresCardStore(db, logger))

	guard, err := service.NewAccessGuard(deckRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create access guard: %w", err)
	}

	app.deckService, err = service.NewDeckService(deckRepo, cardRepo, guard, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	// A nil interface, not a nil *gemini.Generator, disables generation.
	var generator generation.Generator
	if cfg.LLM.GenerationEnabled() {
		g, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		generator = g
		logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Info("card generation disabled: no Gemini API key configured")
	}

	app.cardService, err = service.NewCardService(
		cardRepo,
		deckRepo,
		guard,
		srs.NewDefaultService(),
		generator,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	if cfg.Server.RateLimitRPS > 0 {
		app.rateLimiter = apiMiddleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	return app, nil
}
