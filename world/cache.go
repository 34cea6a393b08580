package world

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
)

// regionCache holds decoded regions keyed by file name. Every region costs 1,
// so MaxCost is the number of regions kept. A nil cache stores nothing.
type regionCache[T any] struct {
	cache *ristretto.Cache[string, *anvil.Save[T]]
}

func newRegionCache[T any](regions int64) (*regionCache[T], error) {
	if regions <= 0 {
		return nil, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *anvil.Save[T]]{
		NumCounters:        regions * 10,
		MaxCost:            regions,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &regionCache[T]{cache: cache}, nil
}

func (c *regionCache[T]) get(pos anvil.RegionPos) (*anvil.Save[T], bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(pos.FileName())
}

func (c *regionCache[T]) set(pos anvil.RegionPos, save *anvil.Save[T]) {
	if c == nil {
		return
	}
	c.cache.Set(pos.FileName(), save, 1)
	c.cache.Wait()
}

func (c *regionCache[T]) close() {
	if c != nil {
		c.cache.Close()
	}
}
