// Package cache implements the result cache used to memoize aggregation outputs.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/budget-tracker/insights/internal/application/adapter"
)

// MemoryResultCache is an in-process LRU with per-entry TTL. It backs memoization when
// Redis is not configured.
type MemoryResultCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type memoryItem struct {
	key       string
	payload   []byte
	expiresAt time.Time
}

// NewMemoryResultCache creates a new MemoryResultCache holding at most maxSize entries.
func NewMemoryResultCache(maxSize int, ttl time.Duration) *MemoryResultCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &MemoryResultCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Get retrieves a payload, returning adapter.ErrCacheMiss when absent or expired.
func (c *MemoryResultCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, adapter.ErrCacheMiss
	}

	item := elem.Value.(*memoryItem)
	if c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, adapter.ErrCacheMiss
	}

	c.lru.MoveToFront(elem)
	return item.payload, nil
}

// Set stores a payload, evicting the least recently used entry when full.
func (c *MemoryResultCache) Set(_ context.Context, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &memoryItem{
		key:       key,
		payload:   payload,
		expiresAt: c.now().Add(c.ttl),
	}

	if elem, ok := c.items[key]; ok {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return nil
	}

	c.items[key] = c.lru.PushFront(item)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *MemoryResultCache) removeElement(elem *list.Element) {
	item := elem.Value.(*memoryItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}
