// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package metrics provides Prometheus instrumentation for the event
// store, the HTTP API, engagement operations, the recommendation engine,
// and the watch fan-out. Collectors are registered at init via promauto
// and exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of document store operation errors",
		},
		[]string{"operation", "error_type"}, // error_type: "not_found", "unavailable"
	)

	StoreEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_events",
			Help: "Current number of events in the store",
		},
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Engagement Metrics
	FavoriteToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_toggles_total",
			Help: "Total number of favorite toggle operations",
		},
		[]string{"direction"}, // "added", "removed"
	)

	RSVPsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvps_recorded_total",
			Help: "Total number of RSVP operations",
		},
		[]string{"status"},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
	)

	RecommendationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation ranking in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of events returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10},
		},
	)

	// Watch Fan-out Metrics
	WatchConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "watch_connections",
			Help: "Current number of active watch subscriptions",
		},
	)

	WatchSnapshotsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "watch_snapshots_sent_total",
			Help: "Total number of event snapshots delivered to watchers",
		},
	)

	WatchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watch_errors_total",
			Help: "Total number of watch delivery errors",
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

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordStoreOperation records a document store operation metric.
func RecordStoreOperation(operation string, duration time.Duration, errorType string) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if errorType != "" {
		StoreOperationErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFavoriteToggle records a favorite being added or removed.
func RecordFavoriteToggle(added bool) {
	direction := "removed"
	if added {
		direction = "added"
	}
	FavoriteToggles.WithLabelValues(direction).Inc()
}

// RecordRSVP records an RSVP operation by status.
func RecordRSVP(status string) {
	RSVPsRecorded.WithLabelValues(status).Inc()
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(duration time.Duration, resultSize int, err error) {
	RecommendationRequests.Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if err != nil {
		RecommendationErrors.Inc()
		return
	}
	RecommendationResultSize.Observe(float64(resultSize))
}

// TrackWatchConnection tracks active watch subscriptions.
func TrackWatchConnection(inc bool) {
	if inc {
		WatchConnections.Inc()
	} else {
		WatchConnections.Dec()
	}
}

// RecordCircuitBreakerTransition records a breaker state change and
// updates the state gauge.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
}

func stateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
