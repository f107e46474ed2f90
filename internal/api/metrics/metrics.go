// Package metrics defines and registers all custom Prometheus metrics for
// the dispatch system. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionLookupsTotal counts session validations on authenticated requests.
// Label:
//   - result: "valid" or "invalid"
var SessionLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_lookups_total",
		Help:      "Total number of session validations, by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created client orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of client orders created.",
	},
)

// TruckAssignmentsTotal counts dispatcher tow-truck assignments.
// Label:
//   - result: "success" or "failure"
var TruckAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "truck_assignments_total",
		Help:      "Total number of tow truck assignments, by result.",
	},
	[]string{"result"},
)

// OrderStatusUpdatesTotal counts applied order lifecycle transitions.
// Label:
//   - status: the new order status (e.g. "completed")
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status transitions applied.",
	},
	[]string{"status"},
)

// ── Portal metrics ────────────────────────────────────────────────────────────

// PortalBackendRequestDuration measures outbound portal-to-API call latency.
// Labels:
//   - endpoint: logical endpoint name (e.g. "order_list")
//   - outcome: "ok" or "error"
var PortalBackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "portal_backend_request_duration_seconds",
		Help:      "Duration of portal requests to the dispatch API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "outcome"},
)
