// Package metrics defines and registers the Prometheus metrics of the aura
// client. It is the single source of truth for metric names, labels and
// help strings; the shell exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aura_client"

// ── Request pipeline ──────────────────────────────────────────────────────────

// APIRequestsTotal counts remote API calls.
// Labels:
//   - method: HTTP method
//   - outcome: "ok" or the error kind (e.g. "unauthenticated", "network-error")
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of remote API calls, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// APIRequestDuration measures remote call latency, including failed calls.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of remote API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// CredentialInvalidationsTotal counts credentials dropped after a 401.
var CredentialInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_invalidations_total",
		Help:      "Total number of credentials cleared because the API answered 401.",
	},
)

// ── Session ───────────────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state transitions.
// Label:
//   - status: the state entered (idle, loading, authenticated, unauthenticated)
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by target status.",
	},
	[]string{"status"},
)

// ── View shell ────────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts access guard decisions on navigation.
// Label:
//   - outcome: pending, allow, redirect-login, redirect-fallback
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by outcome.",
	},
	[]string{"outcome"},
)
