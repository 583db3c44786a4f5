package memory

import "sync"

// Cache holds originally extracted source text for the process lifetime.
// Last writer wins per key; no eviction, no size bound, no persistence.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func New() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func (c *Cache) Save(id, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = text
}

func (c *Cache) Get(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.entries[id]
	return text, ok
}
