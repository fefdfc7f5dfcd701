package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/core"
)

// sqlQueries holds the dialect-specific statements for a SQL-backed cache.
type sqlQueries struct {
	createTable string
	get         string
	upsert      string
	delete      string
	cleanup     string
}

// sqlCache implements the CacheRepository port on top of database/sql. The
// SQLite and MySQL caches differ only in their statements.
type sqlCache struct {
	db          *sql.DB
	queries     sqlQueries
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

func newSQLCache(db *sql.DB, queries sqlQueries, logger *zap.Logger, cleanupFreq time.Duration) (*sqlCache, error) {
	if _, err := db.Exec(queries.createTable); err != nil {
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	c := &sqlCache{
		db:          db,
		queries:     queries,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.cleanupLoop()

	return c, nil
}

// Get retrieves a cached entry for a submitter.
func (c *sqlCache) Get(ctx context.Context, email string) (*core.CacheEntry, error) {
	entry := &core.CacheEntry{Email: email}
	var lastSeen, expiresAt time.Time

	err := c.db.QueryRowContext(ctx, c.queries.get, email, time.Now()).
		Scan(&entry.Spam, &entry.Confidence, &lastSeen, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	entry.LastSeen = lastSeen
	entry.ExpiresAt = expiresAt
	return entry, nil
}

// Set stores a cache entry, replacing any previous verdict for the same
// submitter.
func (c *sqlCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	_, err := c.db.ExecContext(ctx, c.queries.upsert,
		entry.Email, entry.Spam, entry.Confidence, entry.LastSeen, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry.
func (c *sqlCache) Delete(ctx context.Context, email string) error {
	if _, err := c.db.ExecContext(ctx, c.queries.delete, email); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries.
func (c *sqlCache) Cleanup(ctx context.Context) error {
	res, err := c.db.ExecContext(ctx, c.queries.cleanup, time.Now())
	if err != nil {
		return fmt.Errorf("failed to clean up cache: %w", err)
	}
	if removed, err := res.RowsAffected(); err == nil {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", removed))
	}
	return nil
}

func (c *sqlCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop ends the background cleanup loop and closes the database handle.
func (c *sqlCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close cache database", zap.Error(err))
	}
}
