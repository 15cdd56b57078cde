package database

import (
	"database/sql"
)

// Get returns the blob stored under key.
func (db *DB) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := db.conn.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous blob, and
// notifies subscribers of key.
func (db *DB) Set(key string, value []byte) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return err
	}
	db.Notify(key, value)
	return nil
}

// Keys returns every stored key in lexical order.
func (db *DB) Keys() ([]string, error) {
	rows, err := db.conn.Query(`SELECT key FROM kv_store ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
