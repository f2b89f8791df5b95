package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Hospital backend client metrics
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	BackendFailures *prometheus.CounterVec

	// Workflow metrics
	TransitionsApplied *prometheus.CounterVec
	QueueCacheHits     prometheus.Counter
	QueueCacheMisses   prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BackendRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of requests issued to the hospital backend",
		}, []string{"operation", "status"}),
		BackendLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of hospital backend requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation"}),
		BackendFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_failures_total",
			Help:      "Total number of failed hospital backend requests",
		}, []string{"operation"}),
		TransitionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_transitions_total",
			Help:      "Appointment status transitions driven through this gateway",
		}, []string{"from", "to"}),
		QueueCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doctor_queue_cache_hits_total",
			Help:      "Doctor queue reads served from the in-process cache",
		}),
		QueueCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doctor_queue_cache_misses_total",
			Help:      "Doctor queue reads that required a backend fetch",
		}),
	}
}
