package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
	ErrClosed       = errors.New("cache is closed")
	ErrInvalidKey   = errors.New("invalid cache key")
)

// Cache stores values that implement encoding.BinaryMarshaler (or strings)
// and reads them back into *string or encoding.BinaryUnmarshaler targets.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	Get(ctx context.Context, key string, value any) error

	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error

	Close() error
}

type Options struct {
	DefaultTTL time.Duration

	CleanupInterval time.Duration

	RedisURL string

	RedisPassword string

	RedisDB int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL:      time.Hour,
		CleanupInterval: time.Minute * 5,
	}
}

// Key joins lowercased, trimmed parts with ":". Empty parts are kept so
// ("a", "", "b") and ("a", "b") stay distinct.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(normalized, ":")
}
