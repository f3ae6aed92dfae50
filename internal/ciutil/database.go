package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/scry-decks/internal/redact"
)

// Connection defaults of the Postgres service container used in CI.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "scry_test"
	StandardCIOptions  = "sslmode=disable"
)

// GetTestDatabaseURL resolves the integration test database URL from
// SCRY_TEST_DB_URL, DATABASE_URL or SCRY_DATABASE_URL, in that order. Under CI the
// URL is rewritten to the standard service credentials. An empty string means no
// database is configured.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvScryTestDBURL, EnvDatabaseURL, EnvScryDatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := StandardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("failed to standardize database URL",
				"error", err,
				"url", redact.String(dbURL),
			)
		}
		return dbURL
	}
	return standardized
}

// StandardizeDatabaseURL swaps the credentials of a postgres URL for the CI defaults
// and fills in the port, database name and options when they are missing. Non-postgres
// URLs are returned unchanged.
func StandardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	parsed.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	host := parsed.Hostname()
	if parsed.Port() == "" && (host == "" || host == "localhost" || host == "127.0.0.1") {
		if host == "" {
			host = "localhost"
		}
		parsed.Host = host + ":" + StandardCIPort
	}
	if strings.TrimPrefix(parsed.Path, "/") == "" {
		parsed.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		parsed.RawQuery = StandardCIOptions
	}

	return parsed.String(), nil
}
