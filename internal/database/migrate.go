package database

import (
	"database/sql"
	"fmt"
	"log"
)

func schemaVersion(conn *sql.DB) (int, error) {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// migrate applies every migration newer than the stored user_version and
// returns how many ran.
func migrate(conn *sql.DB) (int, error) {
	current, err := schemaVersion(conn)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := apply(conn, m); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func apply(conn *sql.DB, m Migration) error {
	log.Printf("Applying migration %d: %s", m.Version, m.Description)

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := m.Up(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: committing: %w", m.Version, err)
	}

	// user_version set inside the transaction is not kept by modernc/sqlite.
	if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("migration %d: recording version: %w", m.Version, err)
	}
	return nil
}
