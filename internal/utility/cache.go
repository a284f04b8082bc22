package utility

import (
	"sync"
	"time"
)

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is an in-memory key/value store whose entries expire ttl after they are set.
// Expired entries are swept every cleanup interval.
type Cache struct {
	items    map[string]cacheItem
	mu       sync.RWMutex
	ttl      time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache and starts its sweeper.
func NewCache(ttl, cleanup time.Duration) *Cache {
	cache := &Cache{
		items:    make(map[string]cacheItem),
		ttl:      ttl,
		cleanup:  cleanup,
		stopChan: make(chan struct{}),
	}
	if cleanup > 0 {
		go cache.cleanupLoop()
	}
	return cache
}

// Set stores value under key.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Get returns the value under key unless it expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, exists := c.items[key]
	if !exists || (c.ttl > 0 && time.Now().After(item.expiresAt)) {
		return nil, false
	}
	return item.value, true
}

// Delete drops key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Stop ends the sweeper.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep(time.Now())
		case <-c.stopChan:
			return
		}
	}
}

func (c *Cache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, item := range c.items {
		if c.ttl > 0 && now.After(item.expiresAt) {
			delete(c.items, k)
		}
	}
}
