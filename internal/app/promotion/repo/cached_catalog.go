package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

// productCache is the subset of the Redis client the catalog cache uses.
type productCache interface {
	MGet(ctx context.Context, keys ...string) ([]string, []bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ProductKey(productID string) string
}

// cachedProduct is the JSON form of a product stored in Redis.
type cachedProduct struct {
	ID        string `json:"id"`
	Nama      string `json:"nama"`
	SKU       string `json:"sku"`
	HargaJual int64  `json:"harga_jual"`
	Tipe      string `json:"tipe"`
}

// CachedCatalog serves products from Redis and falls back to the wrapped
// catalog for misses. Cache failures never fail a lookup.
type CachedCatalog struct {
	next    contracts.ProductCatalog
	cache   productCache
	ttl     time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewCachedCatalog wraps next with a read-through product cache.
func NewCachedCatalog(next contracts.ProductCatalog, cache productCache, ttl time.Duration, log *logger.Logger, m *metrics.Metrics) contracts.ProductCatalog {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedCatalog{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		log:     log,
		metrics: m,
	}
}

// GetProductsByIDs returns cached products and loads the rest from the catalog.
func (c *CachedCatalog) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found := make(map[string]domain.Product, len(ids))
	missing := c.fromCache(ctx, ids, found)
	c.metrics.AddCacheHits(len(ids) - len(missing))
	c.metrics.AddCacheMisses(len(missing))

	if len(missing) > 0 {
		loaded, err := c.next.GetProductsByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			found[p.ID] = p
			c.store(ctx, p)
		}
	}

	return inRequestOrder(ids, found), nil
}

// fromCache fills found with cached products and returns the IDs it could not serve.
func (c *CachedCatalog) fromCache(ctx context.Context, ids []string, found map[string]domain.Product) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.cache.ProductKey(id)
	}

	values, hits, err := c.cache.MGet(ctx, keys...)
	if err != nil {
		c.log.Error(ctx, "product cache read failed", err)
		return ids
	}

	var missing []string
	for i, id := range ids {
		if i >= len(hits) || !hits[i] {
			missing = append(missing, id)
			continue
		}
		var cp cachedProduct
		if err := json.Unmarshal([]byte(values[i]), &cp); err != nil || cp.ID != id {
			missing = append(missing, id)
			continue
		}
		found[id] = domain.Product{
			ID:        cp.ID,
			Nama:      cp.Nama,
			SKU:       cp.SKU,
			HargaJual: cp.HargaJual,
			Tipe:      domain.ProductType(cp.Tipe),
		}
	}
	return missing
}

func (c *CachedCatalog) store(ctx context.Context, p domain.Product) {
	payload, err := json.Marshal(cachedProduct{
		ID:        p.ID,
		Nama:      p.Nama,
		SKU:       p.SKU,
		HargaJual: p.HargaJual,
		Tipe:      string(p.Tipe),
	})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cache.ProductKey(p.ID), payload, c.ttl); err != nil {
		c.log.Error(ctx, "product cache write failed", err)
	}
}
