package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/quantmind-br/deckpack/internal/domain"
)

// SimpleMockCache is an in-memory domain.Cache for tests.
// TTLs are accepted and ignored.
type SimpleMockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	Gets int
	Sets int
}

// NewSimpleMockCache creates an empty in-memory cache
func NewSimpleMockCache() *SimpleMockCache {
	return &SimpleMockCache{data: make(map[string][]byte)}
}

// Get retrieves a value, returning domain.ErrCacheMiss when absent
func (c *SimpleMockCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	value, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return value, nil
}

// Set stores a copy of value
func (c *SimpleMockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.data[key] = append([]byte(nil), value...)
	return nil
}

// Has reports whether key is stored
func (c *SimpleMockCache) Has(_ context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.data[key]
	return ok
}

// Delete removes key
func (c *SimpleMockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Close is a no-op
func (c *SimpleMockCache) Close() error {
	return nil
}

// Len returns the number of stored keys
func (c *SimpleMockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

var _ domain.Cache = (*SimpleMockCache)(nil)
