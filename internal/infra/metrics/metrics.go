package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "supply_console"

// Metrics собирает счётчики клиента API и кеша запросов.
// Нулевой указатель допустим: все методы становятся no-op.
type Metrics struct {
	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors prometheus.Counter
	invalidated prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Requests sent to the supply-chain API.",
		}, []string{"method", "resource", "code"}),
		apiDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Latency of requests to the supply-chain API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_hits_total",
			Help:      "Reads served from the query cache.",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_fetches_total",
			Help:      "Reads that triggered a fetch.",
		}),
		cacheErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_fetch_errors_total",
			Help:      "Fetches that failed.",
		}),
		invalidated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_invalidations_total",
			Help:      "Cache entries marked stale.",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, resource, code string, seconds float64) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, resource, code).Inc()
	m.apiDuration.WithLabelValues(method, resource).Observe(seconds)
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) CacheError() {
	if m != nil {
		m.cacheErrors.Inc()
	}
}

func (m *Metrics) Invalidated(n int) {
	if m != nil {
		m.invalidated.Add(float64(n))
	}
}

// APIRequests и CacheFetches нужны тестам и /metrics не затрагивают.
func (m *Metrics) APIRequests() prometheus.Collector { return m.apiRequests }

func (m *Metrics) CacheFetches() prometheus.Counter { return m.cacheMisses }

func (m *Metrics) CacheHits() prometheus.Counter { return m.cacheHits }
