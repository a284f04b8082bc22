// Package metrics holds the Prometheus collectors of the API and the /metrics handler.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reboot"

// Metrics groups every collector exposed by the service.
type Metrics struct {
	registry *prometheus.Registry

	idAllocations *prometheus.CounterVec
	idConflicts   *prometheus.CounterVec
	idFailures    *prometheus.CounterVec
	listQueries   *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Default returns the process-wide collectors, created on first use.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

// New creates collectors on a private registry that also carries the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		idAllocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "id_allocations_total",
			Help:      "Identifiers handed out, by entity and allocation strategy.",
		}, []string{"entity", "strategy"}),
		idConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "id_allocation_conflicts_total",
			Help:      "Inserts rejected because the allocated identifier was already taken.",
		}, []string{"entity"}),
		idFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "id_allocation_failures_total",
			Help:      "Allocations that failed before an identifier was produced.",
		}, []string{"entity"}),
		listQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "business_list_queries_total",
			Help:      "Business listing queries, by caller role.",
		}, []string{"role"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.idAllocations, m.idConflicts, m.idFailures, m.listQueries,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IDAllocated counts one identifier handed out.
func (m *Metrics) IDAllocated(entity, strategy string) {
	m.idAllocations.WithLabelValues(entity, strategy).Inc()
}

// IDConflict counts one insert rejected for a taken identifier.
func (m *Metrics) IDConflict(entity string) {
	m.idConflicts.WithLabelValues(entity).Inc()
}

// IDFailure counts one failed allocation.
func (m *Metrics) IDFailure(entity string) {
	m.idFailures.WithLabelValues(entity).Inc()
}

// ListQuery counts one business listing query.
func (m *Metrics) ListQuery(role string) {
	if role == "" {
		role = "unknown"
	}
	m.listQueries.WithLabelValues(role).Inc()
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
