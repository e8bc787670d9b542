package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the dashboard's prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	Rollbacks       *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend API calls by method and status code (0 = network error)",
		}, []string{"method", "status_code"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of backend API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result",
		}, []string{"cache", "result"}),
		Rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimistic_rollbacks_total",
			Help:      "Optimistic row mutations reverted after a failed backend call",
		}, []string{"entity"}),
	}
	reg.MustRegister(c.BackendRequests, c.BackendDuration, c.CacheLookups, c.Rollbacks)
	return c
}

// ObserveBackend records one backend call. A nil collector is a no-op so
// tests can skip metrics wiring.
func (c *Collector) ObserveBackend(method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.BackendRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.BackendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveCache(cache string, hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(cache, result).Inc()
}

func (c *Collector) ObserveRollback(entity string) {
	if c == nil {
		return
	}
	c.Rollbacks.WithLabelValues(entity).Inc()
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
