package data

import (
	"sync"
	"time"

	"coop-budget/internal/exercise"
)

// CacheEntry represents a cached analysis outcome
type CacheEntry struct {
	Outcome   exercise.Outcome
	ExpiresAt time.Time
}

// ResultCache keeps analysis outcomes retrievable by ID for a limited time.
// It is safe for concurrent use.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewResultCache creates a cache and starts its cleanup goroutine.
// Call Close to stop it.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &ResultCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.cleanup(5 * time.Minute)
	return c
}

// Get retrieves a cached outcome if available and not expired
func (c *ResultCache) Get(id string) (exercise.Outcome, bool) {
	if c == nil {
		return exercise.Outcome{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok || c.now().After(entry.ExpiresAt) {
		return exercise.Outcome{}, false
	}
	return entry.Outcome, true
}

// Put stores an outcome under its ID.
func (c *ResultCache) Put(out exercise.Outcome) {
	if c == nil || out.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[out.ID] = &CacheEntry{
		Outcome:   out,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of entries, expired or not.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*CacheEntry)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *ResultCache) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *ResultCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *ResultCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}
