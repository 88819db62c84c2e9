//go:build integration

package testdb

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SCRY_TEST_DB_URL", "postgres://fallback")
	assert.Equal(t, "postgres://fallback", DatabaseURL())

	t.Setenv("DATABASE_URL", "postgres://primary")
	assert.Equal(t, "postgres://primary", DatabaseURL())
}

func TestWithTxRollsBack(t *testing.T) {
	db := Open(t)

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS testdb_rollback_check (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = db.Exec(`DROP TABLE IF EXISTS testdb_rollback_check`) })

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.Exec(`INSERT INTO testdb_rollback_check (id) VALUES (1)`)
		require.NoError(t, err)
	})

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM testdb_rollback_check`).Scan(&count))
	assert.Zero(t, count)
}
