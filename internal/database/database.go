// Package database persists application state in a local SQLite file.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TobiSchelling/climatenews/internal/storage"
	_ "modernc.org/sqlite"
)

// pragmas are applied to every connection before migrating.
var pragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode=WAL", "journal mode"},
	{"PRAGMA busy_timeout=5000", "busy timeout"},
	{"PRAGMA synchronous=NORMAL", "synchronous mode"},
}

// DB is the SQLite-backed storage.Store plus the refresh log.
type DB struct {
	storage.Subscribers
	conn *sql.DB
	path string
}

// Open creates or opens the database at dbPath and brings its schema up to date.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// busy_timeout and synchronous are per connection; keep one so they always apply.
	conn.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting %s: %w", p.what, err)
		}
	}

	if _, err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// SchemaVersion returns the applied migration version.
func (db *DB) SchemaVersion() (int, error) {
	return schemaVersion(db.conn)
}
