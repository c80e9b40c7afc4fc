// Package sqlite provides the SQLite-backed session store. Each row
// remembers the last cursor position and mode for one file path so that
// reopening the file can restore where the user left off.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schema is the full session store schema. It is applied on every open;
// every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL UNIQUE,
	row        INTEGER NOT NULL,
	col        INTEGER NOT NULL,
	mode       TEXT NOT NULL DEFAULT 'normal',
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// DB wraps the sqlite connection for the session store.
type DB struct {
	conn *sql.DB
}

// NewDB opens (creating if necessary) the session database at path and
// applies the schema. The parent directory is created with 0700
// permissions. An existing database file is snapshotted to path+".bak"
// before the schema runs against it.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := backupIfExists(path); err != nil {
		return nil, fmt.Errorf("failed to back up database: %w", err)
	}

	// The _pragma parameters apply to every pooled connection, not just
	// the first one opened.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(on)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// backupIfExists copies an existing database file to path+".bak". The
// store is small enough that a whole-file copy is cheap.
func backupIfExists(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", data, 0o600)
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (d *DB) Connection() *sql.DB {
	return d.conn
}

// SessionRepository returns a repository bound to this database.
func (d *DB) SessionRepository(opts ...Option) *SessionRepository {
	return NewSessionRepository(d.conn, opts...)
}
