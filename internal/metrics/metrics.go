// Package metrics defines Prometheus instrumentation for the client core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lifecycle metrics
var (
	// ApplicationTransitions tracks status transition attempts by edge and outcome.
	// Outcome is one of: ok, rejected_local, failed.
	ApplicationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_transitions_total",
			Help: "Application status transition attempts by from, to and outcome",
		},
		[]string{"from", "to", "outcome"},
	)

	// OptimisticRollbacks tracks reconciler rollbacks after failed backend calls.
	OptimisticRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimistic_rollbacks_total",
			Help: "Optimistic updates rolled back after a backend failure",
		},
		[]string{"operation"},
	)
)

// Session metrics
var (
	// SessionInvalidations tracks global session clears caused by
	// authentication-invalid responses.
	SessionInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_invalidations_total",
			Help: "Sessions cleared after an authentication-invalid signal",
		},
	)

	// SessionResolutions tracks identity resolutions by result (hit, miss, error).
	SessionResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_resolutions_total",
			Help: "Session identity resolutions by result",
		},
		[]string{"result"},
	)
)

// Backend call metrics
var (
	// BackendRequests tracks REST calls by route and status class.
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Backend REST requests by route and status",
		},
		[]string{"route", "status"},
	)

	// BackendRequestDuration tracks REST call latency in seconds.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend REST request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// BackendBreakerStateChanges tracks circuit breaker transitions.
	BackendBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_breaker_state_changes_total",
			Help: "Backend circuit breaker state transitions by new state",
		},
		[]string{"state"},
	)
)
