package assets

import "sync"

// Cache holds resolved asset bytes for the lifetime of one generation
// call. A cached nil means the reference was already tried and is absent,
// so repeated lookups cost no I/O either way. Each call owns its own
// cache; it is never shared across calls.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

func (c *Cache) get(ref string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[ref]
	return data, ok
}

func (c *Cache) put(ref string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ref] = data
}

// Len reports how many references have been resolved, absent ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
