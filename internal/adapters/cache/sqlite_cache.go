package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteCache is a SQLite-backed implementation of the CacheRepository
// port, suitable for single-host deployments.
type SQLiteCache struct {
	*sqlCache
}

var sqliteQueries = sqlQueries{
	createTable: `
		CREATE TABLE IF NOT EXISTS spam_checks (
			email TEXT PRIMARY KEY,
			spam BOOLEAN NOT NULL,
			confidence REAL NOT NULL,
			last_seen TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`,
	get: `
		SELECT spam, confidence, last_seen, expires_at
		FROM spam_checks
		WHERE email = ? AND expires_at > ?`,
	upsert: `
		INSERT OR REPLACE INTO spam_checks (email, spam, confidence, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
	delete:  `DELETE FROM spam_checks WHERE email = ?`,
	cleanup: `DELETE FROM spam_checks WHERE expires_at <= ?`,
}

// NewSQLiteCache opens (or creates) the database at dbPath.
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	inner, err := newSQLCache(db, sqliteQueries, logger, cleanupFreq)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteCache{sqlCache: inner}, nil
}
