// Package metrics exposes request, store and validation counters for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is nil-safe: every method on a nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec

	validationFailuresTotal *prometheus.CounterVec
	maintenanceRunsTotal    *prometheus.CounterVec
}

// New registers the collectors on registry. A nil registry gets a fresh one
// with the Go and process collectors attached.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := &Metrics{registry: registry}
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "HTTP requests served, by route pattern, method and status",
		},
		[]string{"route", "method", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	m.storeOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_store_operations_total",
			Help: "Record store operations, by entity, operation and result",
		},
		[]string{"entity", "op", "result"},
	)
	m.storeOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_store_operation_duration_seconds",
			Help:    "Record store operation latency",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"entity", "op"},
	)
	m.validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_validation_failures_total",
			Help: "Rejected write payloads, by entity, field and rule",
		},
		[]string{"entity", "field", "rule"},
	)
	m.maintenanceRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_maintenance_runs_total",
			Help: "Store maintenance runs, by result",
		},
		[]string{"result"},
	)
	for _, c := range []prometheus.Collector{
		m.httpRequestsTotal, m.httpRequestDuration,
		m.storeOperationsTotal, m.storeOperationDuration,
		m.validationFailuresTotal, m.maintenanceRunsTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registry is the gatherer behind Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObserveStore records one store call. notFound is counted apart from errors.
func (m *Metrics) ObserveStore(entity, op string, err error, notFound bool, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case notFound:
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.storeOperationsTotal.WithLabelValues(entity, op, result).Inc()
	m.storeOperationDuration.WithLabelValues(entity, op).Observe(d.Seconds())
}

func (m *Metrics) ValidationFailed(entity, field, rule string) {
	if m == nil {
		return
	}
	m.validationFailuresTotal.WithLabelValues(entity, field, rule).Inc()
}

func (m *Metrics) MaintenanceRun(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.maintenanceRunsTotal.WithLabelValues(result).Inc()
}
