// Package memory is an in-process cache.Cache used when no Redis server is
// configured.
package memory

import (
	"context"
	"encoding"
	"fmt"
	"sync"
	"time"

	"jobtagger/common/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
	stop       chan struct{}
	closed     bool
}

// New starts a janitor that evicts expired entries every
// opts.CleanupInterval. A zero interval disables the janitor; expired entries
// are still never returned.
func New(opts cache.Options) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: opts.DefaultTTL,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	if c.defaultTTL == 0 {
		c.defaultTTL = cache.DefaultOptions().DefaultTTL
	}
	if opts.CleanupInterval > 0 {
		go c.janitor(opts.CleanupInterval)
	}
	return c
}

func (c *Cache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

func (c *Cache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = append([]byte(nil), v...)
	case encoding.BinaryMarshaler:
		b, err := v.MarshalBinary()
		if err != nil {
			return fmt.Errorf("marshal cache value: %w", err)
		}
		data = b
	default:
		return cache.ErrInvalidValue
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.entries[key] = entry{data: data, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *Cache) Get(_ context.Context, key string, value any) error {
	if key == "" {
		return cache.ErrInvalidKey
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return cache.ErrClosed
	}
	if !ok || c.now().After(e.expiresAt) {
		return cache.ErrNotFound
	}

	switch v := value.(type) {
	case *string:
		*v = string(e.data)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(e.data)
	default:
		return cache.ErrInvalidValue
	}
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.stop)
	return nil
}
