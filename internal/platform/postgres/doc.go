// Package postgres implements the internal/store interfaces on PostgreSQL using
// the pgx driver through database/sql.
//
// The schema is shipped with the package as embedded goose migrations; call
// Migrate before using the stores against a fresh database.
package postgres
