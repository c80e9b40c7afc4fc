package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSessionDB_CreatesSchema(t *testing.T) {
	db := NewSessionDB(t)

	var count int
	err := db.Connection().QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='sessions'`,
	).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "expected sessions table")

	err = db.Connection().QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	require.NoError(t, err, "sessions table should be queryable")
	require.Zero(t, count, "fresh database should be empty")
}

func TestSeedSession_VisibleThroughRepository(t *testing.T) {
	db := NewSessionDB(t)
	SeedSession(t, db, "/tmp/seeded.md", 9, 4, "normal")

	found, err := db.SessionRepository().FindByPath(context.Background(), "/tmp/seeded.md")
	require.NoError(t, err)
	require.Equal(t, 9, found.Row)
	require.Equal(t, 4, found.Col)
	require.Equal(t, "normal", found.Mode)
	require.NotEmpty(t, found.ID)
}
