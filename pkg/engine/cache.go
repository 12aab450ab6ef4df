package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

// ResultCache caches evaluation results by request.
// Key is SHA256 of the request's JSON encoding.
type ResultCache struct {
	results map[string]*Result
	mu      sync.RWMutex
}

// NewResultCache creates a new result cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		results: make(map[string]*Result),
	}
}

// Get retrieves a cached result for the given request.
// Returns nil if not found.
func (c *ResultCache) Get(req Request) *Result {
	key := computeCacheKey(req)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.results[key]
}

// Set stores a result for the given request.
func (c *ResultCache) Set(req Request, result *Result) {
	key := computeCacheKey(req)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = result
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Clear drops all cached results.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]*Result)
}

// computeCacheKey returns SHA256 hash of the request as hex string.
func computeCacheKey(req Request) string {
	data, _ := json.Marshal(req)
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
