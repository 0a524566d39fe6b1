package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptory",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptory",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Conversations
	ConversationsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptory",
			Subsystem: "api",
			Name:      "conversations_submitted_total",
			Help:      "Total conversations submitted",
		},
		[]string{"source"},
	)

	// Tag extraction
	TagsExtractedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promptory",
			Subsystem: "api",
			Name:      "tags_extracted_total",
			Help:      "Total tags attached by the extraction pipeline",
		},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptory",
			Subsystem: "api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"auth_type", "status"},
	)

	// Search requests
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptory",
			Subsystem: "api",
			Name:      "search_requests_total",
			Help:      "Total conversation search requests",
		},
		[]string{"filtered"},
	)
)

// RecordRequest records an HTTP request with duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordConversationSubmitted records a submitted conversation and its tag count
func RecordConversationSubmitted(source string, tagCount int) {
	ConversationsSubmittedTotal.WithLabelValues(source).Inc()
	TagsExtractedTotal.Add(float64(tagCount))
}

// RecordAuthRequest records an authentication attempt outcome
func RecordAuthRequest(authType, status string) {
	if status == "" {
		status = "unknown"
	}
	AuthRequestsTotal.WithLabelValues(authType, status).Inc()
}

// RecordSearch records a search request, flagging whether filters were applied
func RecordSearch(filtered bool) {
	flag := "false"
	if filtered {
		flag = "true"
	}
	SearchRequestsTotal.WithLabelValues(flag).Inc()
}
