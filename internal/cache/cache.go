// file: internal/cache/cache.go
// version: 2.0.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package cache

import (
	"container/list"
	"sync"
)

type entry[T any] struct {
	key   string
	value T
}

// LRU is a generic bounded cache safe for concurrent use. Get refreshes
// recency; Set evicts the least-recently-used entry once the capacity is
// reached. There is no time-based expiry: the size bound is the only
// eviction trigger.
type LRU[T any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

// NewLRU creates a cache bounded to capacity entries. Capacities below one
// are clamped to one.
func NewLRU[T any](capacity int) *LRU[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[T]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a value and marks it most recently used.
func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(entry[T]).value, true
}

// Set stores a value, evicting the oldest entry when at capacity.
func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value = entry[T]{key: key, value: value}
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(entry[T]).key)
		}
	}
	c.items[key] = c.order.PushFront(entry[T]{key: key, value: value})
}

// Has reports whether a key is present without refreshing its recency.
func (c *LRU[T]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Clear removes all entries.
func (c *LRU[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// Len returns the current number of entries.
func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Cap returns the configured capacity.
func (c *LRU[T]) Cap() int {
	return c.capacity
}
