package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTTL bounds how long a cached verdict survives; profile edits go
// through the API and re-key the cache, but a ceiling keeps stale entries
// from outliving bulk reconfiguration done directly in the database.
const defaultTTL = 15 * time.Minute

// RedisCache implements CacheRepository backed by redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a redis-backed cache
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get reads a cached value
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value with the default TTL
func (r *RedisCache) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, defaultTTL).Err()
}

// Close releases the underlying client
func (r *RedisCache) Close() error {
	return r.client.Close()
}
