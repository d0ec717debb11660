// Package metrics exposes Prometheus HTTP metrics for the items service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests that matched no registered route.
const unmatchedRoute = "unmatched"

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) {
		m.runtime = true
	}
}

// Manager owns the HTTP metrics and the registry they live on.
type Manager struct {
	namespace string
	registry  *prometheus.Registry
	runtime   bool

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "items",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status_code"},
	)
	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "http_requests_in_flight",
		Help:      "Number of HTTP requests currently being served",
	})

	return m
}

// Middleware records one observation per request, labelled by the matched
// route template rather than the raw path. A panicking handler is counted as
// a 500 and the panic is passed on to the outer recovery middleware.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.httpInFlight.Inc()
		start := time.Now()

		defer func() {
			m.httpInFlight.Dec()
			status := c.Writer.Status()
			rec := recover()
			if rec != nil {
				status = http.StatusInternalServerError
			}
			m.observe(c, status, time.Since(start))
			if rec != nil {
				panic(rec)
			}
		}()

		c.Next()
	}
}

func (m *Manager) observe(c *gin.Context, status int, elapsed time.Duration) {
	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, c.Request.Method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, c.Request.Method, code).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry backing the manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}
