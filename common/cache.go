package common

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache is a keyed, TTL-bounded store of raw response bodies. Each
// client instance owns one, so separate credentials never share entries.
//
// Entries are judged stale against the ttl configured at read time; they are
// not removed until PurgeExpired or Clear is called explicitly. There is no
// background sweeper.
type ResponseCache interface {
	// IsCached reports whether caching is enabled and an unexpired entry
	// exists for key.
	IsCached(key string) bool
	// Get returns the stored body only when IsCached holds for key.
	Get(key string) ([]byte, bool)
	// Put stores body under key when caching is enabled and returns body
	// unchanged either way, so a fetch can be wrapped in it unconditionally.
	Put(key string, body []byte) []byte
	// SetCaching enables or disables the cache and sets the ttl. Caching
	// starts out disabled.
	SetCaching(enabled bool, ttl time.Duration)
	// PurgeExpired removes every entry older than the ttl and returns how
	// many were removed.
	PurgeExpired() int
	// Clear removes all entries.
	Clear()
}

type cacheEntry struct {
	timestamp time.Time
	body      []byte
}

type responseCache struct {
	mu      sync.Mutex
	enabled bool
	ttl     time.Duration
	store   *gocache.Cache
}

// NewResponseCache returns a disabled ResponseCache. Items carry no per-entry
// expiration and the store runs no janitor goroutine; staleness is evaluated
// here against the configured ttl so changing it applies to existing entries.
func NewResponseCache() ResponseCache {
	return &responseCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *responseCache) SetCaching(enabled bool, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	c.ttl = ttl
}

func (c *responseCache) IsCached(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lookup(key)
	return ok
}

func (c *responseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(key)
}

// lookup is the shared freshness check. Callers hold c.mu.
func (c *responseCache) lookup(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}
	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	entry := v.(cacheEntry)
	if !time.Now().Before(entry.timestamp.Add(c.ttl)) {
		// stale, but left in place until PurgeExpired
		return nil, false
	}
	return entry.body, true
}

func (c *responseCache) Put(key string, body []byte) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		c.store.Set(key, cacheEntry{timestamp: time.Now(), body: body}, gocache.NoExpiration)
	}
	return body
}

func (c *responseCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	purged := 0
	now := time.Now()
	for key, item := range c.store.Items() {
		entry := item.Object.(cacheEntry)
		if !now.Before(entry.timestamp.Add(c.ttl)) {
			c.store.Delete(key)
			purged++
		}
	}
	return purged
}

func (c *responseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Flush()
}

// Fingerprint derives the cache key for a request from its full identity.
// The URL's query string is part of the key material, token parameter
// included, so entries are scoped to one credential: rotating the token
// abandons every old entry, and two tokens never share a cache line. That
// mirrors the original client and is kept for compatibility.
func Fingerprint(method, fullURL string) string {
	sum := sha256.Sum256([]byte(method + " " + fullURL))
	return hex.EncodeToString(sum[:])
}
