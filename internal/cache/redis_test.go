package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Users int64 `json:"users"`
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := NewRedisCache(context.Background(), Options{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestGetOrSetCachesValue(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	calls := 0
	load := func() (stats, error) {
		calls++
		return stats{Users: 12}, nil
	}

	got, err := GetOrSet(c, ctx, "dashboard", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Users)

	got, err = GetOrSet(c, ctx, "dashboard", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Users)
	assert.Equal(t, 1, calls)

	assert.True(t, mr.Exists("test:dashboard"))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("test:dashboard"))
}

func TestGetOrSetAfterDelete(t *testing.T) {
	_, c := setupTestRedis(t)
	ctx := context.Background()

	calls := 0
	load := func() (stats, error) {
		calls++
		return stats{Users: int64(calls)}, nil
	}

	_, err := GetOrSet(c, ctx, "dashboard", time.Minute, load)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, "dashboard"))

	got, err := GetOrSet(c, ctx, "dashboard", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Users)
}

func TestGetOrSetPropagatesLoaderError(t *testing.T) {
	_, c := setupTestRedis(t)
	boom := errors.New("db down")

	_, err := GetOrSet(c, context.Background(), "dashboard", time.Minute, func() (stats, error) {
		return stats{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNilCacheIsPassThrough(t *testing.T) {
	var c *RedisCache
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := GetOrSet(c, context.Background(), "k", time.Minute, func() (stats, error) {
			calls++
			return stats{}, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Delete(context.Background(), "k"))
}
