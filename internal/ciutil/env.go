package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/scry-decks/internal/redact"
)

// Environment variables consulted by this package.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	EnvScryTestDBURL   = "SCRY_TEST_DB_URL" // preferred
	EnvDatabaseURL     = "DATABASE_URL"
	EnvScryDatabaseURL = "SCRY_DATABASE_URL"
)

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the first non-empty variable among names, or defaultValue.
// Using anything but the first name logs a warning.
func GetEnvWithFallbacks(names []string, defaultValue string, logger *slog.Logger) string {
	for i, name := range names {
		val := os.Getenv(name)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("using fallback environment variable",
				"used_var", name,
				"preferred_var", names[0],
				"value", redact.String(val),
			)
		}
		return val
	}
	return defaultValue
}
