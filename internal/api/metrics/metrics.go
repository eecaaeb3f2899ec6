// Package metrics defines and registers all custom Prometheus metrics for
// the recipe API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipebox"

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - kind: "user" or "superuser"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created, by kind.",
	},
	[]string{"kind"},
)

// LoginsTotal counts token requests.
// Label:
//   - result: "success", "rejected", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RecipesMutatedTotal counts recipe writes.
// Label:
//   - action: "created", "updated", or "deleted"
var RecipesMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_mutated_total",
		Help:      "Total number of recipe mutations, by action.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts audit-trail entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity entries that failed to persist.",
	},
)
