package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string
	Count int
}

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return New(client, time.Minute), server
}

func TestCacheSetGet(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", cachedValue{Name: "split", Count: 3}))

	var loaded cachedValue
	require.True(t, cache.Get(ctx, "key", &loaded))
	assert.Equal(t, cachedValue{Name: "split", Count: 3}, loaded)
}

func TestCacheMiss(t *testing.T) {
	cache, _ := testCache(t)

	var loaded cachedValue
	assert.False(t, cache.Get(context.Background(), "missing", &loaded))
	assert.False(t, cache.Has(context.Background(), "missing"))
}

func TestCacheExpiry(t *testing.T) {
	cache, server := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", cachedValue{Name: "zagreb"}))
	require.True(t, cache.Has(ctx, "key"))

	server.FastForward(2 * time.Minute)

	assert.False(t, cache.Has(ctx, "key"))
}

func TestCacheDelete(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", cachedValue{Name: "osijek"}))
	require.NoError(t, cache.Delete(ctx, "key"))

	assert.False(t, cache.Has(ctx, "key"))
}

func TestKeyDeterministic(t *testing.T) {
	first := Key(cachedValue{Name: "rijeka", Count: 1})
	second := Key(cachedValue{Name: "rijeka", Count: 1})
	different := Key(cachedValue{Name: "rijeka", Count: 2})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, different)
	assert.Len(t, first, 40)
}
