// Package metrics defines and registers all custom Prometheus metrics for
// the shipping API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parcelhub"

// QuotesTotal counts pricing attempts by outcome ("ok", "invalid_route",
// "fare_gap", "error").
var QuotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Total number of parcel quote attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ShipmentsCreatedTotal counts newly created shipments.
var ShipmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created.",
	},
)

// StateChangesTotal counts state changes applied through the change-state
// use case, labelled by the resulting state.
var StateChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_changes_total",
		Help:      "Total number of shipment state changes recorded.",
	},
	[]string{"state"},
)

// WatcherCyclesTotal counts completed watcher poll cycles.
var WatcherCyclesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watcher_cycles_total",
		Help:      "Total number of watcher poll cycles.",
	},
)

// WatcherChangesTotal counts state changes the watcher replayed successfully.
var WatcherChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watcher_changes_total",
		Help:      "Total number of state changes replayed by the watcher.",
	},
)

// WatcherItemErrorsTotal counts per-item replay failures inside watcher batches.
var WatcherItemErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watcher_item_errors_total",
		Help:      "Total number of watcher items that failed to replay.",
	},
)
