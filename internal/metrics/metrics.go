// Package metrics provides Prometheus metrics for roster imports and exports.
// It is a leaf package so both core and web can record without import cycles.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// importRuns counts import runs by outcome (ok, failed)
	importRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_import_runs_total",
			Help: "Total number of roster import runs",
		},
		[]string{"outcome"},
	)

	// importDuration tracks how long an import run takes, reconciliation included
	importDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roster_import_duration_seconds",
			Help:    "Roster import duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// importMembers counts imported records by result (added, duplicate, rejected)
	importMembers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_import_members_total",
			Help: "Members seen by imports, by result",
		},
		[]string{"result"},
	)

	// exportRuns counts export runs by outcome (ok, failed)
	exportRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_export_runs_total",
			Help: "Total number of roster export runs",
		},
		[]string{"outcome"},
	)

	// exportedMembers counts records written by exports
	exportedMembers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roster_exported_members_total",
			Help: "Total number of members written by exports",
		},
	)
)

// RecordImport records a completed import run.
func RecordImport(added, duplicates, rejected int, duration time.Duration) {
	importRuns.WithLabelValues("ok").Inc()
	importDuration.Observe(duration.Seconds())
	importMembers.WithLabelValues("added").Add(float64(added))
	importMembers.WithLabelValues("duplicate").Add(float64(duplicates))
	importMembers.WithLabelValues("rejected").Add(float64(rejected))
}

// RecordImportError records an import that failed at file level.
func RecordImportError() {
	importRuns.WithLabelValues("failed").Inc()
}

// RecordExport records a completed export.
func RecordExport(records int) {
	exportRuns.WithLabelValues("ok").Inc()
	exportedMembers.Add(float64(records))
}

// RecordExportError records a failed export.
func RecordExportError() {
	exportRuns.WithLabelValues("failed").Inc()
}
