package material

import (
	"image"
	"sync"
)

// Resolver resolves a texture name to a path and, on demand, a decoded image.
type Resolver interface {
	ResolvePath(texName string) (string, bool)
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache backed by an Index.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img    *image.NRGBA
	loaded bool // true if we've attempted to load (img may still be nil)
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// ResolvePath forwards to the backing index.
func (c *Cache) ResolvePath(texName string) (string, bool) {
	return c.index.ResolvePath(texName)
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// undecodable.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, _ := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()

	return img
}
