package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Ledger metrics
	MovementsRecorded *prometheus.CounterVec

	// Authentication metrics
	LoginAttempts prometheus.Counter
	LoginFailures prometheus.Counter
)

// Init registers all metrics under the given prefix.
func Init(prefix string) {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	MovementsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_movements_recorded_total",
			Help: "Total number of stock movements recorded",
		},
		[]string{"type"},
	)

	LoginAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	LoginFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_failures_total",
			Help: "Total number of failed login attempts",
		},
	)
}
