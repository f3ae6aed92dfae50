// Package ciutil detects CI environments and resolves the database URL used by
// integration tests, normalizing it to the standard CI Postgres service when needed.
package ciutil
