// Package cache is a bounded-lifetime result cache for fetched journey data,
// keyed by a deterministic hash of the originating request. Expiry is handled
// by the backing store; duplicate concurrent fetches for the same key are
// acceptable, staleness tolerance being the cache's only purpose.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	cache *gocache.Cache[string]
}

// New builds a cache over the given Redis client with a per-entry lifetime.
func New(client *redis.Client, timeToLive time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(timeToLive))

	return &Cache{cache: gocache.New[string](redisStore)}
}

// Key derives the deterministic cache key for a request value: the SHA-1 of
// its JSON encoding.
func Key(request interface{}) string {
	encoded, err := json.Marshal(request)
	if err != nil {
		return ""
	}

	sum := sha1.Sum(encoded)
	return hex.EncodeToString(sum[:])
}

// Set stores a value under the key for the cache's lifetime.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.cache.Set(ctx, key, string(encoded))
}

// Get loads the value stored under key into target, reporting whether a live
// entry existed.
func (c *Cache) Get(ctx context.Context, key string, target interface{}) bool {
	encoded, err := c.cache.Get(ctx, key)
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(encoded), target) == nil
}

// Has reports whether a live entry exists under key.
func (c *Cache) Has(ctx context.Context, key string) bool {
	_, err := c.cache.Get(ctx, key)
	return err == nil
}

// Delete removes the entry under key, if any.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}
