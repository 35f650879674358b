// Package metrics defines and registers all custom Prometheus metrics for the
// hero service. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register themselves with the default registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "superhero"

// HeroesCreatedTotal counts newly created heroes.
// Label:
//   - universe: "Marvel", "DC", or "Autre"
var HeroesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "heroes_created_total",
		Help:      "Total number of heroes created, by universe.",
	},
	[]string{"universe"},
)

// HeroesDeletedTotal counts deleted heroes.
var HeroesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "heroes_deleted_total",
		Help:      "Total number of heroes deleted.",
	},
)

// ListCacheTotal counts hero list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of hero list cache lookups, by result.",
	},
	[]string{"result"},
)

// UploadsRejectedTotal counts rejected image uploads.
// Label:
//   - reason: "too_large" or "bad_type"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of image uploads rejected, by reason.",
	},
	[]string{"reason"},
)

// ImageRepairsTotal counts offline image repair outcomes.
// Label:
//   - result: "fixed" or "unresolved"
var ImageRepairsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_repairs_total",
		Help:      "Total number of image repair attempts, by result.",
	},
	[]string{"result"},
)

// SweeperRemovalsTotal counts upload files removed by the cleanup sweeper.
// Label:
//   - result: "removed" or "failed"
var SweeperRemovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweeper_removals_total",
		Help:      "Total number of upload file removals attempted by the sweeper, by result.",
	},
	[]string{"result"},
)
