package metrics

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Result labels
const (
	ResultOK                   = "ok"
	ResultNotFound             = "not_found"
	ResultAlreadyExists        = "already_exists"
	ResultInvalidReference     = "invalid_reference"
	ResultAlreadyInTargetState = "already_in_target_state"
	ResultInvalidTransition    = "invalid_transition"
	ResultUnavailable          = "unavailable"
	ResultError                = "error"
)

// Metrics records repository operations and HTTP requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	requests    *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Repository operations by entity, operation and result.",
		}, []string{"entity", "op", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_seconds",
			Help:      "Repository operation latency including connection acquisition.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.operations,
		m.latency,
		m.requests,
		m.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RegisterDB exports database/sql pool statistics.
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Registry returns the registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Observe records one finished repository operation.
func (m *Metrics) Observe(entity, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(entity, op, Result(err)).Inc()
	m.latency.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

// ObserveHTTP records one served request. route is the gin route template
// ("/api/v1/projects/:id"); unmatched paths should pass "unmatched" to keep cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Result maps an error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, sharedError.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, sharedError.ErrAlreadyExists):
		return ResultAlreadyExists
	case errors.Is(err, sharedError.ErrInvalidReference):
		return ResultInvalidReference
	case errors.Is(err, sharedError.ErrAlreadyInTargetState):
		return ResultAlreadyInTargetState
	case errors.Is(err, sharedError.ErrInvalidTransition):
		return ResultInvalidTransition
	case errors.Is(err, sharedError.ErrResourceUnavailable):
		return ResultUnavailable
	default:
		return ResultError
	}
}
