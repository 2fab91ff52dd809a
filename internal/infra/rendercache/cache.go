// Package rendercache keeps rendered public pages in memory until the page
// is published again or a collection it lists changes.
package rendercache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

type Cache struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
	now func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{m: map[string]entry{}, ttl: ttl, now: time.Now}
}

// Key builds the cache key of a page render variant.
func Key(slug, variant string) string { return slug + "|" + variant }

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || (c.ttl > 0 && c.now().After(e.expires)) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, v any) {
	c.mu.Lock()
	c.m[key] = entry{value: v, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops every variant of the given page slugs.
func (c *Cache) Invalidate(slugs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.m {
		for _, s := range slugs {
			if strings.HasPrefix(k, s+"|") {
				delete(c.m, k)
				break
			}
		}
	}
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.m = map[string]entry{}
	c.mu.Unlock()
}
