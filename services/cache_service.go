package services

import (
	"context"
	"sync"
	"time"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/sirupsen/logrus"
)

// CacheEntry represents a cached item with expiration
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// IsExpired checks if the cache entry has expired
func (ce *CacheEntry) IsExpired(now time.Time) bool {
	return now.After(ce.ExpiresAt)
}

// CacheService is a bounded in-memory TTL cache. Expired entries are removed
// lazily on read and in bulk by CleanupExpired.
type CacheService struct {
	cache      map[string]*CacheEntry
	mutex      sync.RWMutex
	defaultTTL time.Duration
	maxSize    int
	now        func() time.Time
}

// NewCacheService creates a cache with the given default TTL and capacity
func NewCacheService(defaultTTL time.Duration, maxSize int) *CacheService {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &CacheService{
		cache:      make(map[string]*CacheEntry),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
		now:        time.Now,
	}
}

// Get retrieves a value from cache
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	entry, exists := cs.cache[key]
	if !exists || entry.IsExpired(cs.now()) {
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value in cache with default TTL
func (cs *CacheService) Set(key string, value interface{}) {
	cs.SetWithTTL(key, value, cs.defaultTTL)
}

// SetWithTTL stores a value in cache with custom TTL
func (cs *CacheService) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if _, exists := cs.cache[key]; !exists && len(cs.cache) >= cs.maxSize {
		cs.evictOldest()
	}

	cs.cache[key] = &CacheEntry{
		Data:      value,
		ExpiresAt: cs.now().Add(ttl),
	}
}

// evictOldest removes the entry closest to expiry
func (cs *CacheService) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range cs.cache {
		if oldestKey == "" || entry.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(cs.cache, oldestKey)
	}
}

// Delete removes a value from cache
func (cs *CacheService) Delete(key string) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	delete(cs.cache, key)
}

// Clear removes all values from cache
func (cs *CacheService) Clear() {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.cache = make(map[string]*CacheEntry)
}

// Size returns the number of items in cache, expired ones included
func (cs *CacheService) Size() int {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	return len(cs.cache)
}

// CleanupExpired removes expired entries and returns how many were removed
func (cs *CacheService) CleanupExpired() int {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	now := cs.now()
	removed := 0
	for key, entry := range cs.cache {
		if entry.IsExpired(now) {
			delete(cs.cache, key)
			removed++
		}
	}
	return removed
}

// CachedQuoteSource wraps a QuoteSource with caching. Only hits are cached.
type CachedQuoteSource struct {
	source QuoteSource
	cache  *CacheService
}

// NewCachedQuoteSource creates a new cached quote source
func NewCachedQuoteSource(source QuoteSource, cache *CacheService) *CachedQuoteSource {
	return &CachedQuoteSource{
		source: source,
		cache:  cache,
	}
}

func (c *CachedQuoteSource) Lookup(ctx context.Context, symbol string) (*models.Quote, error) {
	cacheKey := "quote:" + symbol

	if cached, found := c.cache.Get(cacheKey); found {
		if quote, ok := cached.(*models.Quote); ok {
			return quote.Clone(), nil
		}
	}

	quote, err := c.source.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, quote.Clone())
	logrus.WithFields(logrus.Fields{
		"component": "CachedQuoteSource",
		"symbol":    symbol,
	}).Debug("Cached quote")

	return quote, nil
}

func (c *CachedQuoteSource) Symbols() []string {
	return c.source.Symbols()
}

// Cache exposes the underlying cache for maintenance jobs
func (c *CachedQuoteSource) Cache() *CacheService {
	return c.cache
}
