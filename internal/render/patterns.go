package render

import (
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPatternCacheSize is the number of named patterns kept by a surface
const DefaultPatternCacheSize = 256

// PatternCache keeps named patterns so they are built once and reused
// across frames. Least recently used patterns are evicted.
type PatternCache struct {
	cache *lru.Cache[string, Pattern]
}

// NewPatternCache creates a cache holding up to size patterns
func NewPatternCache(size int) *PatternCache {
	if size <= 0 {
		size = DefaultPatternCacheSize
	}
	cache, err := lru.New[string, Pattern](size)
	if err != nil {
		// only returned for a non-positive size
		log.Printf("pattern cache: %v", err)
		return &PatternCache{}
	}
	return &PatternCache{cache: cache}
}

// Ensure stores p unless a pattern with the same name exists. It reports
// whether p was added.
func (c *PatternCache) Ensure(p Pattern) bool {
	if c.cache == nil {
		return false
	}
	if c.cache.Contains(p.Name) {
		return false
	}
	c.cache.Add(p.Name, p)
	return true
}

// Get returns the pattern registered under name
func (c *PatternCache) Get(name string) (Pattern, bool) {
	if c.cache == nil {
		return Pattern{}, false
	}
	return c.cache.Get(name)
}

// Len returns the number of cached patterns
func (c *PatternCache) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Purge drops every pattern
func (c *PatternCache) Purge() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
