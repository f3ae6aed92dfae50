//go:build integration

// Package testdb provides helpers for tests that need a real PostgreSQL database.
//
// Tests obtain a migrated connection with GetTestDB, which skips the test when no
// database URL is configured, and isolate themselves with WithTx: each test body
// runs in a transaction that is rolled back afterwards.
//
//	db := testdb.GetTestDB(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    decks := postgres.NewPostgresDeckStore(tx, nil)
//	    ...
//	})
package testdb
