package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
)

// sqlCache holds the queries shared by the SQLite and MySQL caches.
// Timestamps are stored as Unix seconds.
type sqlCache struct {
	db          *sql.DB
	logger      *zap.Logger
	upsertQuery string
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

func newSQLCache(db *sql.DB, logger *zap.Logger, upsertQuery string) *sqlCache {
	return &sqlCache{
		db:          db,
		logger:      logger,
		upsertQuery: upsertQuery,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}
}

// Get retrieves an unexpired cached draft
func (c *sqlCache) Get(ctx context.Context, key string) (*core.CacheEntry, error) {
	var entry core.CacheEntry
	var createdAt, expiresAt int64

	err := c.db.QueryRowContext(ctx, `
		SELECT draft_key, polished, model, created_at, expires_at
		FROM draft_cache
		WHERE draft_key = ?
	`, key).Scan(&entry.Key, &entry.Polished, &entry.Model, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	entry.CreatedAt = time.Unix(createdAt, 0)
	entry.ExpiresAt = time.Unix(expiresAt, 0)
	if expiresAt <= c.now().Unix() {
		return nil, ErrExpired
	}

	return &entry, nil
}

// Set stores a cache entry
func (c *sqlCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	_, err := c.db.ExecContext(ctx, c.upsertQuery,
		entry.Key, entry.Polished, entry.Model, entry.CreatedAt.Unix(), entry.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *sqlCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM draft_cache
		WHERE draft_key = ?
	`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *sqlCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM draft_cache
		WHERE expires_at <= ?
	`, c.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// startCleanup runs the periodic cleanup when freq is positive
func (c *sqlCache) startCleanup(freq time.Duration) {
	if freq > 0 {
		go runCleanup(c, freq, c.stopCh, c.logger)
	}
}

// Stop stops the background cleanup task and closes the database connection
func (c *sqlCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close cache database", zap.Error(err))
		}
	})
}
