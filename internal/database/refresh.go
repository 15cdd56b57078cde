package database

import (
	"database/sql"
	"encoding/json"
)

// InsertRefreshRun records the outcome of a news feed refresh.
func (db *DB) InsertRefreshRun(outcome string, articleCount int, sources map[string]int) (int64, error) {
	var srcJSON *string
	if sources != nil {
		data, err := json.Marshal(sources)
		if err != nil {
			return 0, err
		}
		s := string(data)
		srcJSON = &s
	}

	result, err := db.conn.Exec(
		`INSERT INTO refresh_runs (outcome, article_count, sources) VALUES (?, ?, ?)`,
		outcome, articleCount, srcJSON,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLastRefreshRun returns the most recent refresh, or nil if none exist.
func (db *DB) GetLastRefreshRun() (*RefreshRun, error) {
	row := db.conn.QueryRow(
		`SELECT id, outcome, article_count, sources, refreshed_at
		FROM refresh_runs ORDER BY id DESC LIMIT 1`,
	)

	var r RefreshRun
	var srcJSON *string
	if err := row.Scan(&r.ID, &r.Outcome, &r.ArticleCount, &srcJSON, &r.RefreshedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if srcJSON != nil {
		if err := json.Unmarshal([]byte(*srcJSON), &r.Sources); err != nil {
			r.Sources = nil
		}
	}
	return &r, nil
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM kv_store", &s.StoredKeys},
		{"SELECT COUNT(*) FROM refresh_runs", &s.RefreshRuns},
		{"SELECT COUNT(*) FROM refresh_runs WHERE outcome = 'fallback'", &s.FallbackRuns},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
