// ABOUTME: Redis cache implementation using go-redis client, an opt-in content cache backend
// ABOUTME: Keys live under a service namespace and every entry must carry a TTL

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Namespace prefixes every key so a shared Redis is not polluted
const Namespace = "bookmarkcast:"

// ErrNoTTL is returned by Set when asked to store an entry that never expires
var ErrNoTTL = errors.New("redis cache entries require a positive TTL")

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and pings it before returning
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}

	return &RedisCache{client: client}, nil
}

func namespaced(key string) string {
	return Namespace + key
}

// Get retrieves a value; a missing or expired key is interfaces.ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interfaces.ErrCacheMiss
	}
	return val, err
}

// Set stores value for ttl. Unlike plain SET, a zero TTL is rejected.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrNoTTL
	}
	return c.client.Set(ctx, namespaced(key), value, ttl).Err()
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, namespaced(key)).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
