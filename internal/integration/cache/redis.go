package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/insights/internal/application/adapter"
)

// RedisResultCache stores memoized results in Redis with a fixed TTL.
type RedisResultCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisResultCache creates a new RedisResultCache. Keys are namespaced with prefix.
func NewRedisResultCache(client *redis.Client, prefix string, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a payload, returning adapter.ErrCacheMiss when the key is absent.
func (c *RedisResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, adapter.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cached result: %w", err)
	}
	return payload, nil
}

// Set stores a payload with the configured TTL.
func (c *RedisResultCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.SetEx(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cached result: %w", err)
	}
	return nil
}
