// Package metrics defines and registers the custom Prometheus metrics for the
// catalog API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry on package init and are served
// by the /metrics endpoint alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// Auth rejection reasons.
const (
	ReasonNoToken          = "no_token"
	ReasonInvalidToken     = "invalid_token"
	ReasonNotAuthenticated = "not_authenticated"
	ReasonForbidden        = "forbidden"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests stopped by the auth middleware.
// Label:
//   - reason: one of the Reason* constants
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid", "conflict", "denied", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by result.",
	},
	[]string{"operation", "result"},
)

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful writes to the catalog.
// Label:
//   - operation: "create", "replace", "update", or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of successful product writes, by operation.",
	},
	[]string{"operation"},
)

// ValidationFailuresTotal counts request bodies rejected by a validator.
// Label:
//   - route: the echo route path (e.g. "/api/products/:id")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of request bodies rejected by validation.",
	},
	[]string{"route"},
)
