package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSQLiteCache(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := NewSQLiteCache(":memory:", zap.NewNop(), 0)
	require.NoError(t, err)
	t.Cleanup(c.Stop)
	return c
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now().Truncate(time.Second)
	require.NoError(t, c.Set(ctx, entry("a", now, time.Hour)))

	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Key)
	assert.Equal(t, "polished a", got.Polished)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))

	updated := entry("a", now, time.Hour)
	updated.Polished = "second"
	require.NoError(t, c.Set(ctx, updated))
	got, err = c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Polished)

	require.NoError(t, c.Delete(ctx, "a"))
	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteCacheExpiryAndCleanup(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, entry("old", now.Add(-2*time.Hour), time.Hour)))
	require.NoError(t, c.Set(ctx, entry("fresh", now, time.Hour)))

	_, err := c.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrExpired)

	require.NoError(t, c.Cleanup(ctx))

	_, err = c.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Get(ctx, "fresh")
	assert.NoError(t, err)
}
