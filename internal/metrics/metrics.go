// Package metrics records client-side request and action metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDuration is the task API round-trip time in seconds.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskman_api_request_duration_seconds",
			Help:    "Task API request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
		},
		[]string{"method", "route", "status"},
	)

	// ActionCount counts user actions by outcome.
	ActionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskman_actions_total",
			Help: "Total number of client actions",
		},
		[]string{"action", "outcome"}, // outcome: ok, invalid, failed
	)
)

// Action outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// RecordAPIRequest records one API round trip.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// IncrementAction counts one user action.
func IncrementAction(action, outcome string) {
	ActionCount.WithLabelValues(action, outcome).Inc()
}

// WriteTextfile writes all registered metrics to path in text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
