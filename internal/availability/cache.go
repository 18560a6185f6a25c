package availability

import (
	"fmt"
	"sync"
	"time"
)

// SlotCache is a bounded TTL cache for computed slot lists. It replaces an
// unbounded per-request memo: entries expire after a short TTL and the
// oldest entry is evicted once the size cap is reached, so a burst of
// distinct date lookups cannot grow memory without limit.
type SlotCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
	stopCh  chan struct{}
}

type cacheEntry struct {
	slots     []Slot
	createdAt time.Time
}

func NewSlotCache(maxSize int, ttl time.Duration) *SlotCache {
	c := &SlotCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Key builds the cache key for one slot computation.
func Key(locationID, date, treatmentID string) string {
	return fmt.Sprintf("%s|%s|%s", locationID, date, treatmentID)
}

func (c *SlotCache) Get(key string) ([]Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if time.Since(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return entry.slots, true
}

func (c *SlotCache) Set(key string, slots []Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	c.entries[key] = &cacheEntry{
		slots:     slots,
		createdAt: time.Now(),
	}
}

// Invalidate drops every entry for one location, called after a booking or
// schedule change so stale slot lists do not outlive their TTL.
func (c *SlotCache) Invalidate(locationID string) {
	prefix := locationID + "|"

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

func (c *SlotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *SlotCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.createdAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *SlotCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if time.Since(entry.createdAt) > c.ttl {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

func (c *SlotCache) Stop() {
	close(c.stopCh)
}
