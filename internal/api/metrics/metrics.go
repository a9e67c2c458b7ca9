// Package metrics defines all custom Prometheus metrics for the
// collections API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collections"

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LoansCreatedTotal counts newly created loans.
var LoansCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_created_total",
		Help:      "Total number of loans created.",
	},
)

// LoansCompletedTotal counts loans whose status flipped to completed by a
// payment (manual status overrides are not counted).
var LoansCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_completed_total",
		Help:      "Total number of loans completed through payments.",
	},
)

// PaymentsAppliedTotal counts payments folded into the ledger.
// Label:
//   - result: "applied" or "replayed" (idempotent duplicate)
var PaymentsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_applied_total",
		Help:      "Total number of payment submissions, by outcome.",
	},
	[]string{"result"},
)

// PaymentAmountCollected accumulates the money collected through payments.
var PaymentAmountCollected = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_amount_collected_total",
		Help:      "Sum of all applied payment amounts.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (all failure causes collapse into one)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
