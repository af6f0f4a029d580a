package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for API client calls.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeCanceled  = "canceled"
)

var (
	// ClientRequestsTotal counts API calls by method, status class and outcome.
	ClientRequestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of API requests issued by the client",
		},
		[]string{"method", "status_class", "outcome"},
	)

	// ClientRequestDuration records API call latency in seconds.
	ClientRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds, including body decoding",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method"},
	)
)

// StatusClass buckets an HTTP status into "2xx".."5xx", or "none" when no
// response was received.
func StatusClass(status int) string {
	switch {
	case status >= 100 && status < 600:
		return string(rune('0'+status/100)) + "xx"
	default:
		return "none"
	}
}

// ObserveClientRequest records one finished API call.
func ObserveClientRequest(method string, status int, outcome string, seconds float64) {
	ClientRequestsTotal.WithLabelValues(method, StatusClass(status), outcome).Inc()
	ClientRequestDuration.WithLabelValues(method).Observe(seconds)
}
