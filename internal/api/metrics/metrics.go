// Package metrics defines and registers all custom Prometheus metrics for the
// handover API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry at import
// time via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "handover"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// SessionValidationsTotal counts session token validations.
// Label:
//   - result: "valid", "no_session", "invalid_session" or "error"
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session token validations, labelled by result.",
	},
	[]string{"result"},
)

// SessionCacheTotal counts session cache lookups.
// Label:
//   - result: "hit" or "miss"
var SessionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_cache_total",
		Help:      "Total number of session cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// DocumentsWrittenTotal counts handover document upserts.
var DocumentsWrittenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_written_total",
		Help:      "Total number of handover documents written.",
	},
)

// DocumentsReadTotal counts handover document reads.
var DocumentsReadTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_read_total",
		Help:      "Total number of handover documents read.",
	},
)

// UsersCreatedTotal counts user accounts created through the admin API.
// Label:
//   - role: "admin" or "user"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts user accounts deleted through the admin API.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)
