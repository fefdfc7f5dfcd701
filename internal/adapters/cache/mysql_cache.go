package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLCache is a MySQL-backed implementation of the CacheRepository port
// for deployments sharing verdicts across hosts.
type MySQLCache struct {
	*sqlCache
}

var mysqlQueries = sqlQueries{
	createTable: `
		CREATE TABLE IF NOT EXISTS spam_checks (
			email VARCHAR(255) PRIMARY KEY,
			spam BOOLEAN NOT NULL,
			confidence DOUBLE NOT NULL,
			last_seen DATETIME NOT NULL,
			expires_at DATETIME NOT NULL,
			INDEX idx_expires_at (expires_at)
		)`,
	get: `
		SELECT spam, confidence, last_seen, expires_at
		FROM spam_checks
		WHERE email = ? AND expires_at > ?`,
	upsert: `
		INSERT INTO spam_checks (email, spam, confidence, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			spam = VALUES(spam),
			confidence = VALUES(confidence),
			last_seen = VALUES(last_seen),
			expires_at = VALUES(expires_at)`,
	delete:  `DELETE FROM spam_checks WHERE email = ?`,
	cleanup: `DELETE FROM spam_checks WHERE expires_at <= ?`,
}

// NewMySQLCache connects using the given DSN. The DSN must enable
// parseTime so DATETIME columns scan into time.Time.
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	return NewMySQLCacheWithDB(db, logger, cleanupFreq)
}

// NewMySQLCacheWithDB wraps an existing handle. Used by tests.
func NewMySQLCacheWithDB(db *sql.DB, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	inner, err := newSQLCache(db, mysqlQueries, logger, cleanupFreq)
	if err != nil {
		return nil, err
	}
	return &MySQLCache{sqlCache: inner}, nil
}
