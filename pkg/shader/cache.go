package shader

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	gen  Generation
	name string
}

// Cache memoizes resolved infos by generation and material name. It is safe
// for concurrent use; concurrent misses for the same material resolve once.
// Use one Cache per descriptor table.
type Cache struct {
	mu    sync.RWMutex
	infos map[cacheKey]*Info
	group singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{infos: make(map[cacheKey]*Info)}
}

// Get returns a cached info.
func (c *Cache) Get(gen Generation, name string) (*Info, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.infos[cacheKey{gen, name}]
	return info, ok
}

// Put stores info under its generation and the lookup name Resolve would
// be called with, which may differ from info.Name after a stem match.
func (c *Cache) Put(name string, info *Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos[cacheKey{info.Generation, name}] = info
}

// Len returns the number of cached infos.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.infos)
}

// Clear drops every cached info.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos = make(map[cacheKey]*Info)
}

// Resolve returns the cached info for name or resolves and caches it.
// Errors are not cached.
func (c *Cache) Resolve(r Resolver, name string, table DescriptorTable) (*Info, error) {
	key := cacheKey{r.Generation(), name}
	if info, ok := c.Get(key.gen, key.name); ok {
		return info, nil
	}

	v, err, _ := c.group.Do(key.gen.String()+"\x00"+name, func() (any, error) {
		if info, ok := c.Get(key.gen, key.name); ok {
			return info, nil
		}
		info, err := r.Resolve(name, table)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.infos[key] = info
		c.mu.Unlock()
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Info), nil
}
