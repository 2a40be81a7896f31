package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records service-level Prometheus metrics. A nil *Metrics, or one
// built without a registerer, records nothing.
type Metrics struct {
	httpDuration *prometheus.HistogramVec
	validations  *prometheus.CounterVec
	previews     *prometheus.CounterVec
	cache        *prometheus.CounterVec
}

// New registers the service metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promo_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_validations_total",
		Help: "Promotion validations by variant and result.",
	}, []string{"variant", "result"})
	previews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_previews_total",
		Help: "Promotion price previews by variant and outcome.",
	}, []string{"variant", "outcome"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_catalog_cache_lookups_total",
		Help: "Product catalog cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(httpDuration, validations, previews, cache)
	return &Metrics{
		httpDuration: httpDuration,
		validations:  validations,
		previews:     previews,
		cache:        cache,
	}
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// IncValidation counts a validation run.
func (m *Metrics) IncValidation(variant string, valid bool) {
	if m == nil || m.validations == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.validations.WithLabelValues(normalizeLabel(variant), result).Inc()
}

// IncPreview counts a price preview by outcome (valid, invalid, indeterminate).
func (m *Metrics) IncPreview(variant, outcome string) {
	if m == nil || m.previews == nil {
		return
	}
	m.previews.WithLabelValues(normalizeLabel(variant), normalizeLabel(outcome)).Inc()
}

// AddCacheHits counts product lookups served from the cache.
func (m *Metrics) AddCacheHits(n int) {
	m.addCache("hit", n)
}

// AddCacheMisses counts product lookups that fell through to the catalog.
func (m *Metrics) AddCacheMisses(n int) {
	m.addCache("miss", n)
}

func (m *Metrics) addCache(result string, n int) {
	if m == nil || m.cache == nil || n <= 0 {
		return
	}
	m.cache.WithLabelValues(result).Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
