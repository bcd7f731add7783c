// Package testdb provides helpers for database-backed tests. Tests using it
// are skipped when TEST_DATABASE_URL is unset, so the suite passes without
// external infrastructure.
package testdb

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/quadrantio/quadrant-api/internal/platform/postgres"
)

// EnvVar names the environment variable holding the test database URL.
const EnvVar = "TEST_DATABASE_URL"

// URL returns the test database URL, or "" when not configured.
func URL() string {
	return os.Getenv(EnvVar)
}

// Open connects to the test database, verifies reachability and applies all
// migrations. The connection is closed when the test finishes. Skips the
// test when no test database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip(EnvVar + " not set; skipping database-backed test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
	require.NoError(t, postgres.MigrateUp(db))
	return db
}

// Reset clears all rows and restarts identity sequences so each test starts
// from a clean slate.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("TRUNCATE tasks, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// WithTx runs fn inside a transaction that is always rolled back, isolating
// its writes from other tests.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
