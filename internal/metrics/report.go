package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tta",
		Subsystem: "report",
		Name:      "builds_total",
		Help:      "Count of report builds by kind and status.",
	}, []string{"kind", "status"})
	reportBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tta",
		Subsystem: "report",
		Name:      "build_duration_seconds",
		Help:      "Duration of report builds.",
		Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
	}, []string{"kind", "status"})
	reportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tta",
		Subsystem: "report",
		Name:      "rows_total",
		Help:      "Rows written to reports.",
	}, []string{"kind"})
)

// Report tracks report assembly.
type Report struct {
	kind string
}

// NewReport creates a Report metrics collector for the given report kind.
func NewReport(kind string) *Report {
	if kind == "" {
		kind = "unknown"
	}
	return &Report{kind: kind}
}

// ObserveBuild records the outcome of one report build.
func (m Report) ObserveBuild(err error, rows int, started time.Time) {
	status := statusOf(err)

	reportBuildsTotal.WithLabelValues(m.kind, status).Inc()
	reportBuildDuration.WithLabelValues(m.kind, status).Observe(time.Since(started).Seconds())
	reportRowsTotal.WithLabelValues(m.kind).Add(float64(rows))
}
