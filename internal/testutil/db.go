// Package testutil provides shared fixtures for session store tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plume/internal/infrastructure/sqlite"
)

// NewSessionDB creates a session database in a test-scoped temp directory
// with the full schema applied. The database is closed when the test
// completes.
func NewSessionDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedSession inserts a session row directly, bypassing the repository.
// Useful for pre-populating restore state before the code under test runs.
func SeedSession(t *testing.T, db *sqlite.DB, path string, row, col int, mode string) {
	t.Helper()
	_, err := db.Connection().Exec(
		`INSERT INTO sessions (id, path, row, col, mode, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), path, row, col, mode, time.Now().Unix(),
	)
	require.NoError(t, err)
}
