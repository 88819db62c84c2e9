//go:build integration

// Package testdb opens the integration test database, applies the embedded
// migrations once, and runs each test inside a transaction that is rolled
// back afterwards.
//
// Tests are skipped unless DATABASE_URL or SCRY_TEST_DB_URL is set:
//
//	func TestStore(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        streaks := postgres.NewPostgresStreakStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
