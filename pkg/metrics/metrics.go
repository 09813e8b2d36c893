package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets tuned for endpoints that fan out to the
	// identity service and the SMTP relay (both capped at 10s)
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Identity service client metrics
	IdentityRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_client_operation_duration_seconds",
			Help:    "Identity service operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	// Auth bridge metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillyug_login_attempts_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"status"}, // success, invalid_credentials, not_verified, rejected, validation_failed, error
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillyug_registrations_total",
			Help: "Total registration attempts by outcome",
		},
		[]string{"status"},
	)

	OtpOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillyug_otp_operations_total",
			Help: "Total OTP operations by kind and outcome",
		},
		[]string{"operation", "status"},
	)

	// Email dispatch metrics
	EmailDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillyug_email_dispatches_total",
			Help: "Total transactional email dispatches by template type and outcome",
		},
		[]string{"type", "status"}, // status: sent, validation_failed, unavailable, send_failed
	)

	EmailDispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillyug_email_dispatch_duration_seconds",
			Help:    "Email dispatch duration in seconds, including SMTP verification",
			Buckets: CustomAPIBuckets,
		},
		[]string{"type"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
