package thumbnail

import (
	"image"

	"github.com/patrickmn/go-cache"
)

// MemoryCache is an in-memory image cache keyed by URL.
// Entries never expire and are never evicted.
type MemoryCache struct {
	c *cache.Cache
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{c: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryCache) Get(url string) (image.Image, bool) {
	v, ok := m.c.Get(url)
	if !ok {
		return nil, false
	}
	img, ok := v.(image.Image)
	return img, ok
}

func (m *MemoryCache) Set(url string, img image.Image) {
	if img == nil {
		return
	}
	m.c.Set(url, img, cache.NoExpiration)
}

// Len returns the number of cached images.
func (m *MemoryCache) Len() int {
	return m.c.ItemCount()
}
