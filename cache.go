package sqlcrud

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache is the interface for caching fetched records. Users may
// implement it with their preferred backend (Redis, Memcached, ...);
// MemoryCache is a ready-to-use in-process implementation.
//
// Records are stored as msgpack-encoded arrays of their column values
// in declaration order.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given key prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// cacheKey is the by-id cache key of one record.
func cacheKey(table string, id any) string {
	return fmt.Sprintf("%s:id:%v", table, id)
}

// encodeRecord encodes column values as a msgpack array.
func encodeRecord(values []any) ([]byte, error) {
	return msgpack.Marshal(values)
}

// decodeRecord decodes a msgpack array into the given scan
// destinations, positionally. A length mismatch means the cached
// entry was written for a different schema revision and is treated
// as a decode error; callers fall back to the database.
func decodeRecord(data []byte, ptrs []any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != len(ptrs) {
		return fmt.Errorf("sqlcrud: cached record has %d columns, want %d", n, len(ptrs))
	}
	for _, p := range ptrs {
		if err := dec.Decode(p); err != nil {
			return err
		}
	}
	return nil
}

// MemoryCache is a mutex-guarded in-process Cache with per-entry TTL.
// Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	expires time.Time // zero means no expiry.
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get implements the Cache interface.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return e.value, nil
}

// Set implements the Cache interface.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Delete implements the Cache interface.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// DeletePrefix implements the Cache interface.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones
// that have not been read yet.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
