package cache

import (
	"fmt"
	"image"

	"github.com/dgraph-io/ristretto"
)

// RistrettoFlagCache keeps decoded flag images keyed by their source URL.
type RistrettoFlagCache struct {
	cache *ristretto.Cache
}

func NewFlagCache(maxItems int64) (*RistrettoFlagCache, error) {
	if maxItems <= 0 {
		maxItems = 512
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create flag cache failed: %w", err)
	}
	return &RistrettoFlagCache{cache: c}, nil
}

func (c *RistrettoFlagCache) Get(flagURL string) (image.Image, bool) {
	if v, ok := c.cache.Get(flagURL); ok {
		img, ok := v.(image.Image)
		return img, ok
	}
	return nil, false
}

func (c *RistrettoFlagCache) Set(flagURL string, img image.Image) {
	if flagURL == "" || img == nil {
		return
	}
	c.cache.Set(flagURL, img, 1)
}

func (c *RistrettoFlagCache) Close() { c.cache.Close() }
