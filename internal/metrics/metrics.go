// Package metrics provides Prometheus metrics for newsdesk.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsdesk",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ReactionTogglesTotal counts like and favorite toggles by outcome.
	ReactionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "reaction_toggles_total",
			Help:      "Total number of like and favorite toggles",
		},
		[]string{"kind", "active"},
	)

	// ArticlesSubmittedTotal counts submissions by outcome.
	ArticlesSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "articles_submitted_total",
			Help:      "Total number of article submissions",
		},
		[]string{"status"},
	)

	// PageClampsTotal counts listing requests whose page number was clamped.
	PageClampsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "page_clamps_total",
			Help:      "Total number of out-of-range page requests",
		},
		[]string{"clamp"},
	)
)

// RecordRequest records a served HTTP request.
func RecordRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordToggle records a reaction toggle and its resulting state.
func RecordToggle(kind string, active bool) {
	state := "false"
	if active {
		state = "true"
	}
	ReactionTogglesTotal.WithLabelValues(kind, state).Inc()
}

// RecordSubmission records an article submission outcome.
func RecordSubmission(status string) {
	ArticlesSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordClamp records a clamped page number.
func RecordClamp(clamp string) {
	PageClampsTotal.WithLabelValues(clamp).Inc()
}
