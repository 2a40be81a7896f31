package repo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	readErr error
	sets    []string
	ttl     time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) MGet(_ context.Context, keys ...string) ([]string, []bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, nil, f.readErr
	}
	values := make([]string, len(keys))
	found := make([]bool, len(keys))
	for i, k := range keys {
		values[i], found[i] = f.values[k]
	}
	return values, found, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = string(value.([]byte))
	f.sets = append(f.sets, key)
	f.ttl = ttl
	return nil
}

func (f *fakeCache) ProductKey(id string) string { return "promo:product:" + id }

type fakeCatalog struct {
	products map[string]domain.Product
	calls    [][]string
	err      error
}

func (f *fakeCatalog) GetProductsByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newCatalogFixture() *fakeCatalog {
	return &fakeCatalog{products: map[string]domain.Product{
		"p-beras": {ID: "p-beras", Nama: "Beras", SKU: "BRS", HargaJual: 15000, Tipe: domain.ProductTypeCurah},
		"p-gula":  {ID: "p-gula", Nama: "Gula", SKU: "GL", HargaJual: 10000, Tipe: domain.ProductTypeCurah},
	}}
}

func TestCachedCatalog_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backend := newCatalogFixture()
	cache := newFakeCache()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	catalog := NewCachedCatalog(backend, cache, 5*time.Minute, nil, m)

	first, err := catalog.GetProductsByIDs(ctx, []string{"p-gula", "p-hilang", "p-beras", "p-gula"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "p-gula", first[0].ID)
	assert.Equal(t, "p-beras", first[1].ID)
	assert.ElementsMatch(t, []string{"promo:product:p-gula", "promo:product:p-beras"}, cache.sets)
	assert.Equal(t, 5*time.Minute, cache.ttl)

	second, err := catalog.GetProductsByIDs(ctx, []string{"p-beras", "p-gula"})
	require.NoError(t, err)
	assert.Equal(t, first[1], second[0])
	assert.Len(t, backend.calls, 1, "second lookup is served from cache")

	expected := `
# HELP promo_catalog_cache_lookups_total Product catalog cache lookups by result.
# TYPE promo_catalog_cache_lookups_total counter
promo_catalog_cache_lookups_total{result="hit"} 2
promo_catalog_cache_lookups_total{result="miss"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "promo_catalog_cache_lookups_total"))
}

func TestCachedCatalog_CacheFailureFallsThrough(t *testing.T) {
	cache := newFakeCache()
	cache.readErr = errors.New("connection refused")
	catalog := NewCachedCatalog(newCatalogFixture(), cache, time.Minute, nil, nil)

	products, err := catalog.GetProductsByIDs(context.Background(), []string{"p-beras"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(15000), products[0].HargaJual)
}

func TestCachedCatalog_CorruptEntryIsReloaded(t *testing.T) {
	cache := newFakeCache()
	cache.values["promo:product:p-beras"] = "{not json"
	backend := newCatalogFixture()
	catalog := NewCachedCatalog(backend, cache, time.Minute, nil, nil)

	products, err := catalog.GetProductsByIDs(context.Background(), []string{"p-beras"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, [][]string{{"p-beras"}}, backend.calls)
}

func TestCachedCatalog_BackendError(t *testing.T) {
	backend := newCatalogFixture()
	backend.err = errors.New("spanner unavailable")
	catalog := NewCachedCatalog(backend, newFakeCache(), time.Minute, nil, nil)

	_, err := catalog.GetProductsByIDs(context.Background(), []string{"p-beras"})

	assert.ErrorIs(t, err, backend.err)
}

func TestCachedCatalog_EmptyRequest(t *testing.T) {
	backend := newCatalogFixture()
	catalog := NewCachedCatalog(backend, newFakeCache(), time.Minute, nil, nil)

	products, err := catalog.GetProductsByIDs(context.Background(), []string{"", ""})

	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, backend.calls)
}
