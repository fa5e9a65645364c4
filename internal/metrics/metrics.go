// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Quote Metrics
	QuoteFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_fetches_total",
			Help: "Total number of upstream quote fetches",
		},
		[]string{"source", "result"}, // result: "success", "failure", "rejected"
	)

	QuoteFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_fetch_duration_seconds",
			Help:    "Upstream quote fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	QuotesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quotes_stored",
			Help: "Current number of quotes in the store",
		},
	)

	QuoteLikes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_likes_total",
			Help: "Total number of like state changes",
		},
		[]string{"action"}, // "like", "unlike"
	)

	ActivityEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_total",
			Help: "Total number of activity events appended to the log",
		},
		[]string{"type"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to produce recommendations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"algorithm"},
	)

	SimilarityCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_cache_lookups_total",
			Help: "Significant-word cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Event Broker Metrics
	BrokerPublishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_broker_publishes_total",
			Help: "Total number of events published to the in-process broker",
		},
		[]string{"topic", "result"}, // result: "success", "error"
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordQuoteFetch records one upstream fetch attempt.
func RecordQuoteFetch(source string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	QuoteFetches.WithLabelValues(source, result).Inc()
	QuoteFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// SetQuotesStored reports the current store size.
func SetQuotesStored(n int) {
	QuotesStored.Set(float64(n))
}

// RecordLike records a like ("like") or unlike ("unlike") that changed state.
func RecordLike(action string) {
	QuoteLikes.WithLabelValues(action).Inc()
}

// RecordActivityEvent counts an appended activity event by type.
func RecordActivityEvent(eventType string) {
	ActivityEvents.WithLabelValues(eventType).Inc()
}

// RecordRecommendation observes recommendation latency for an algorithm.
func RecordRecommendation(algorithm string, duration time.Duration) {
	RecommendationDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordSimilarityCache counts a significant-word cache lookup.
func RecordSimilarityCache(hit bool) {
	if hit {
		SimilarityCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	SimilarityCacheLookups.WithLabelValues("miss").Inc()
}

// RecordBrokerPublish counts a publish to the event broker.
func RecordBrokerPublish(topic string, err error) {
	if err != nil {
		BrokerPublishes.WithLabelValues(topic, "error").Inc()
		return
	}
	BrokerPublishes.WithLabelValues(topic, "success").Inc()
}
