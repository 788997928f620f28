package redis

import (
	"context"
	"encoding"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtagger/common/cache"
)

type Cache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func New(opts cache.Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisURL,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ttl := opts.DefaultTTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}
	return &Cache{client: client, defaultTTL: ttl}
}

// Ping checks the server is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string, value any) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cache.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case *string:
		*v = string(val)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(val)
	default:
		return cache.ErrInvalidValue
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
