// Package metrics defines the custom Prometheus metrics of the listing API.
// All metrics register with the default registry on package init via promauto;
// HTTP request metrics come from the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "listing"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts guard evaluations. This is the only place the
// internal denial reason becomes visible outside the audit log.
// Labels:
//   - decision: "allow", "deny" or "public"
//   - reason: "missing_token", "malformed_token", "invalid_token",
//     "user_not_found", "role_not_authorized", "store_error", "undeclared",
//     "internal", or "" when allowed
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of authorization guard decisions.",
	},
	[]string{"decision", "reason"},
)

// AuditQueueDepth tracks decisions waiting in each audit worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth decisions pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts decisions dropped because the audit queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of auth decisions dropped due to a full audit queue.",
	},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts successful registrations by role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by role.",
	},
	[]string{"role"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// HomesCreatedTotal counts new listings.
// Label:
//   - property_type: "RESIDENTIAL" or "CONDO"
var HomesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "homes_created_total",
		Help:      "Total number of homes listed, by property type.",
	},
	[]string{"property_type"},
)

// InquiriesTotal counts buyer inquiries.
var InquiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_total",
		Help:      "Total number of buyer inquiries sent.",
	},
)
