// Package metrics exposes the Prometheus collectors of the dashboard API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barnum_query_duration_seconds",
			Help:    "Duration of warehouse queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barnum_query_errors_total",
			Help: "Total number of failed warehouse queries",
		},
		[]string{"endpoint"},
	)

	QueryRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barnum_query_rows",
			Help:    "Number of rows returned by warehouse queries",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"endpoint"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barnum_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barnum_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barnum_http_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "barnum_circuit_breaker_state",
			Help: "Current state of the warehouse circuit breaker",
		},
		[]string{"name"},
	)

	WidgetRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barnum_widget_renders_total",
			Help: "Total number of rendered widget fragments",
		},
		[]string{"kind", "outcome"},
	)
)

// RecordQuery records one warehouse read.
func RecordQuery(endpoint string, duration time.Duration, rows int, err error) {
	QueryDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(endpoint).Inc()
		return
	}
	QueryRows.WithLabelValues(endpoint).Observe(float64(rows))
}

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordWidgetRender(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	WidgetRenders.WithLabelValues(kind, outcome).Inc()
}
