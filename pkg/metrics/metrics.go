package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	BrokerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_requests_total",
			Help: "Total number of broker operations by outcome (count)",
		},
		[]string{"operation", "status"},
	)

	BrokerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "broker_operation_duration_ms",
			Help:    "Duration of broker operations in milliseconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"operation"},
	)

	QueueSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "broker_queue_size",
			Help: "Current number of messages held by the queue (count)",
		},
	)

	QueueWaitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "broker_queue_wait_duration_ms",
			Help:    "Time a message spent in the queue before being consumed in milliseconds",
			Buckets: []float64{1, 10, 100, 1000, 10000, 60000, 600000, 3600000},
		},
	)

	FilterMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "broker_filter_matches",
			Help:    "Number of records matched by a filter query (count)",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000},
		},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of lifecycle events handed to the event publisher (count)",
		},
		[]string{"publisher", "event_type", "status"},
	)

	RetryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of retry attempts (count)",
		},
		[]string{"publisher"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BrokerRequestsTotal,
			BrokerOperationDuration,
			QueueSize,
			QueueWaitDuration,
			FilterMatches,
			EventsPublishedTotal,
			RetryAttemptsTotal,
			CircuitBreakerState,
			CircuitBreakerRequests,
			CircuitBreakerFailures,
			RateLimitRequestsTotal,
		)
	})
}

func IncBrokerRequest(operation, status string) {
	BrokerRequestsTotal.WithLabelValues(operation, status).Inc()
}

func ObserveBrokerOperation(operation string, duration time.Duration) {
	BrokerOperationDuration.WithLabelValues(operation).Observe(float64(duration.Microseconds()) / 1000)
}

func SetQueueSize(size int) {
	QueueSize.Set(float64(size))
}

func ObserveQueueWait(duration time.Duration) {
	QueueWaitDuration.Observe(float64(duration.Milliseconds()))
}

func ObserveFilterMatches(count int) {
	FilterMatches.Observe(float64(count))
}

func IncEventPublished(publisher, eventType, status string) {
	EventsPublishedTotal.WithLabelValues(publisher, eventType, status).Inc()
}

func IncRetryAttempt(publisher string) {
	RetryAttemptsTotal.WithLabelValues(publisher).Inc()
}
