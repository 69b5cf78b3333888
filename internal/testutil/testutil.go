package testutil

import (
	"database/sql"
	"io/fs"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/regexplorer/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is pinned to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	conn, err := sql.Open("sqlite3", ":memory:?_journal_mode=WAL")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	migrations, versions, err := db.Migrations()
	require.NoError(t, err)

	for _, version := range versions {
		sqlBytes, err := fs.ReadFile(migrations, version)
		require.NoError(t, err, "failed to read migration %s", version)

		_, err = conn.Exec(string(sqlBytes))
		require.NoError(t, err, "failed to apply migration %s", version)
	}

	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
