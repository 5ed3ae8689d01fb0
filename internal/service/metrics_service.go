package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-report-gateway/pkg/database"
	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic, statements and the connection pool.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	acquireWait     prometheus.Histogram
	acquireFailures *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	acquireWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "db_pool_acquire_wait_seconds",
		Help:    "Time spent waiting for a pooled connection",
		Buckets: prometheus.DefBuckets,
	})

	acquireFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "db_pool_acquire_failures_total",
		Help: "Connection acquisitions that did not yield a connection",
	}, []string{"reason"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, dbQueryDuration, acquireWait, acquireFailures, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		dbQueryDuration: dbQueryDuration,
		acquireWait:     acquireWait,
		acquireFailures: acquireFailures,
	}
}

// RegisterPool exports gauges read from the pool on every scrape.
func (m *MetricsService) RegisterPool(stats func() database.PoolStats) {
	if m == nil || stats == nil {
		return
	}
	gauge := func(name, help string, read func(database.PoolStats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return read(stats())
		})
	}
	m.registry.MustRegister(
		gauge("db_pool_limit", "Maximum concurrently leased connections", func(s database.PoolStats) float64 { return float64(s.Limit) }),
		gauge("db_pool_in_use", "Connections currently leased", func(s database.PoolStats) float64 { return float64(s.InUse) }),
		gauge("db_pool_waiting", "Callers waiting for a connection", func(s database.PoolStats) float64 { return float64(s.Waiting) }),
		gauge("db_pool_open", "Open database sessions", func(s database.PoolStats) float64 { return float64(s.Open) }),
		gauge("db_pool_destroyed_total", "Connections discarded after a failed statement", func(s database.PoolStats) float64 { return float64(s.Destroyed) }),
	)
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// ObservePoolAcquire records how long a caller waited and why acquisition failed, if it did.
func (m *MetricsService) ObservePoolAcquire(wait time.Duration, err error) {
	if m == nil {
		return
	}
	m.acquireWait.Observe(wait.Seconds())
	if err != nil {
		m.acquireFailures.WithLabelValues(appErrors.FromError(err).Code).Inc()
	}
}
