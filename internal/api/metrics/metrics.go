// Package metrics defines all custom Prometheus metrics for the
// disbursement tracking API. It is the single source of truth for
// metric names, labels, and help strings. Metrics self-register with
// the default registry via promauto on first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "disbursement"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts sign-in attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "inactive_account", "unavailable"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of sign-in attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// GuardDecisionsTotal counts route-guard verdicts.
// Label:
//   - outcome: "proceed", "redirect_login", "redirect_unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route authorization decisions, labelled by outcome.",
	},
	[]string{"outcome"},
)

// ActiveSessions tracks the current number of live sessions.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of active signed-in sessions.",
	},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts newly created disbursement records.
// Label:
//   - classification: "PS", "MOOE", "CO", or "TR"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of disbursement records created, by classification.",
	},
	[]string{"classification"},
)

// RecordTransitionsTotal counts approval-state transitions.
// Label:
//   - status: "APPROVED" or "REJECTED"
var RecordTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_transitions_total",
		Help:      "Total number of disbursement status transitions, by resulting status.",
	},
	[]string{"status"},
)

// SuggestionConfidence observes the confidence of classification suggestions.
// Label:
//   - classification: the suggested code
var SuggestionConfidence = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "suggestion_confidence",
		Help:      "Confidence scores produced by the classification suggester.",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	},
	[]string{"classification"},
)

// ── Audit queue metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
