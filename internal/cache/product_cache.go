package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

// ProductSource loads a product; a nil product with a nil error means absent.
type ProductSource interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

// ProductCache memoises product lookups. Products are immutable once created,
// so entries never need invalidating. Misses are not cached.
type ProductCache struct {
	source ProductSource

	mu    sync.RWMutex
	store map[string]models.Product
}

func NewProductCache(source ProductSource) *ProductCache {
	return &ProductCache{
		source: source,
		store:  make(map[string]models.Product),
	}
}

// clone detaches the image list so callers never share it with the cache.
func clone(p models.Product) *models.Product {
	p.Images = slices.Clone(p.Images)
	return &p
}

func (c *ProductCache) get(id string) (*models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[id]
	if !ok {
		return nil, false
	}
	return clone(p), true
}

func (c *ProductCache) Set(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[p.ID] = *clone(p)
}

func (c *ProductCache) Lookup(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := c.get(id); ok {
		return p, nil
	}
	p, err := c.source.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	c.Set(*p)
	return clone(*p), nil
}
