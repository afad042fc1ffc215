package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache defines the key-value operations the user service depends on.
// It is injected so the service can be tested against miniredis or a fake.
type Cache interface {
	// Get retrieves the raw value stored under key.
	// Returns nil with no error on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with no expiry.
	Set(ctx context.Context, key string, value []byte) error

	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// RedisCache implements Cache using Redis as the backing store.
type RedisCache struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(client *redis.Client, log *zap.Logger) Cache {
	return &RedisCache{
		client: client,
		log:    log,
	}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("cache miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", key))
	return data, nil
}

// Set stores a value in Redis with no expiry.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores a value in Redis with the given TTL. A zero ttl means no expiry.
func (c *RedisCache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.log.Debug("cached value", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// Delete removes keys from Redis.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.Strings("keys", keys))
	return nil
}

// DeleteByPrefix removes every key matching prefix* using a cursor SCAN,
// so invalidation never blocks Redis on a full keyspace walk.
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()

	deleted := 0
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Error("failed to delete key during prefix scan", zap.String("key", iter.Val()), zap.Error(err))
			return err
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		c.log.Error("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return err
	}

	c.log.Debug("deleted keys by prefix", zap.String("prefix", prefix), zap.Int("count", deleted))
	return nil
}
