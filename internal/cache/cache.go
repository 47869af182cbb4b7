package cache

import (
	"sync"
	"time"
)

// entry stores one cached value with its expiry.
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is an in-process TTL cache keyed by string. A read after expiry is
// equivalent to a miss; writes unconditionally overwrite. Nothing survives a
// process restart. Concurrent cold reads for the same key may both miss and
// both trigger upstream fetches; values within a TTL window are considered
// interchangeable, so last writer wins.
type Cache struct {
	itemsMutex sync.RWMutex
	items      map[string]entry

	janitorTicker *time.Ticker
	stopJanitor   chan struct{}
	stopOnce      sync.Once
}

// New creates a cache and starts its janitor goroutine.
func New() *Cache {
	responseCache := &Cache{
		items:         make(map[string]entry),
		janitorTicker: time.NewTicker(5 * time.Minute),
		stopJanitor:   make(chan struct{}),
	}

	go responseCache.janitor()

	return responseCache
}

// Get returns the value for key, or false when absent or expired.
func (responseCache *Cache) Get(key string) (interface{}, bool) {
	responseCache.itemsMutex.RLock()
	defer responseCache.itemsMutex.RUnlock()

	cachedEntry, entryExists := responseCache.items[key]
	if !entryExists || time.Now().After(cachedEntry.expiresAt) {
		return nil, false
	}
	return cachedEntry.value, true
}

// Set stores value under key for the given TTL, overwriting any previous entry.
func (responseCache *Cache) Set(key string, value interface{}, ttl time.Duration) {
	responseCache.itemsMutex.Lock()
	defer responseCache.itemsMutex.Unlock()

	responseCache.items[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Has reports whether key holds an unexpired entry.
func (responseCache *Cache) Has(key string) bool {
	_, entryExists := responseCache.Get(key)
	return entryExists
}

// janitor removes expired entries to prevent unbounded growth.
func (responseCache *Cache) janitor() {
	for {
		select {
		case <-responseCache.janitorTicker.C:
			currentTime := time.Now()
			responseCache.itemsMutex.Lock()
			for key, cachedEntry := range responseCache.items {
				if currentTime.After(cachedEntry.expiresAt) {
					delete(responseCache.items, key)
				}
			}
			responseCache.itemsMutex.Unlock()
		case <-responseCache.stopJanitor:
			responseCache.janitorTicker.Stop()
			return
		}
	}
}

// Stop stops the janitor goroutine.
func (responseCache *Cache) Stop() {
	responseCache.stopOnce.Do(func() {
		close(responseCache.stopJanitor)
	})
}
