package memory

import (
	"context"
	"encoding"
	"encoding/json"
	"sync"
	"time"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache is a process-local Cache implementation used by tests and as a
// fallback when no Redis is configured.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	closed  bool
}

func New(opts cache.Options) *Cache {
	ttl := opts.DefaultTTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}

	var data []byte
	var err error
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case encoding.BinaryMarshaler:
		data, err = v.MarshalBinary()
	default:
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.entries[key] = entry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return cache.ErrClosed
	}
	if !ok || time.Now().After(e.expiresAt) {
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

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
