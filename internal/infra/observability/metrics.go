// Package observability holds the Prometheus metrics of the API.
package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecoimpact/backend/internal/application/adapter"
)

// Metrics groups the collectors exported on /metrics. Each instance owns its
// registry so routers can be built repeatedly in tests.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheLoads        *prometheus.CounterVec
	cacheSaveErrors   prometheus.Counter
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		cacheLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapshot_cache_loads_total",
			Help: "Snapshot cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		cacheSaveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapshot_cache_save_errors_total",
			Help: "Total snapshot cache writes that failed.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheLoads,
		m.cacheSaveErrors,
	)

	return m
}

// Middleware records request counts and durations. Unmatched routes are
// reported as "unmatched" to keep label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InstrumentCache counts hits and misses of a snapshot cache. A nil cache stays nil.
func (m *Metrics) InstrumentCache(cache adapter.SnapshotCache) adapter.SnapshotCache {
	if m == nil || cache == nil {
		return cache
	}
	return &instrumentedCache{next: cache, metrics: m}
}

type instrumentedCache struct {
	next    adapter.SnapshotCache
	metrics *Metrics
}

func (c *instrumentedCache) Save(ctx context.Context, key string, value any) error {
	err := c.next.Save(ctx, key, value)
	if err != nil {
		c.metrics.cacheSaveErrors.Inc()
	}
	return err
}

func (c *instrumentedCache) Load(ctx context.Context, key string, dest any) (bool, error) {
	found, err := c.next.Load(ctx, key, dest)
	switch {
	case err != nil:
		c.metrics.cacheLoads.WithLabelValues("error").Inc()
	case found:
		c.metrics.cacheLoads.WithLabelValues("hit").Inc()
	default:
		c.metrics.cacheLoads.WithLabelValues("miss").Inc()
	}
	return found, err
}
