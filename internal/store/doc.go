// Package store defines the persistence contracts for decks and cards.
//
// Services depend on these interfaces rather than on a database driver; the
// Postgres implementations live in internal/platform/postgres. Every store can be
// bound to a transaction through WithTx so that multi-statement operations such
// as deck deletion run atomically under RunInTransaction.
package store
