// Package main implements the entry point for the Scry decks server, which
// stores users' flashcard decks and schedules their cards for review.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("scry-decks: %v", err)
	}
}

// run loads configuration, connects to the database, applies migrations when
// enabled and serves HTTP until SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"generation_enabled", cfg.LLM.GenerationEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, appLogger); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
