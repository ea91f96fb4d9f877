package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit()
		m.CacheMiss()
		m.CacheError()
		m.Invalidated(3)
		m.ObserveRequest("GET", "products", "200", 0.1)
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.ObserveRequest("GET", "products", "200", 0.01)
	m.ObserveRequest("DELETE", "products", "500", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheFetches()))
	assert.Equal(t, 2, testutil.CollectAndCount(m.APIRequests()))
}

func TestNewOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
