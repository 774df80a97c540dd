package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invtrack/apiserver/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache over a Redis connection. The client is safe for
// concurrent use and lives for the whole process.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a Redis-backed cache from config. It does not
// dial eagerly; a cache that is down behaves as permanently missing.
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:   cfg.DB,
	})
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
