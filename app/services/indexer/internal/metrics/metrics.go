package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var RebuildRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "indexer",
	Subsystem: "rebuild",
	Name:      "runs_total",
}, []string{"result"})

var RebuildRows = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "indexer",
	Subsystem: "rebuild",
	Name:      "rows_total",
}, []string{"table"})

var RebuildSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "indexer",
	Subsystem: "rebuild",
	Name:      "skipped_total",
}, []string{"reason"})

var RebuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: "indexer",
	Subsystem: "rebuild",
	Name:      "duration_seconds",
	Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
})

var BonusConflicts = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "indexer",
	Name:      "bonus_conflicts_total",
	Help:      "download changes whose old and new bonus types differ",
})

var registerOnce sync.Once

// MustRegister adds the indexer collectors to the default registry, which the
// go-zero dev server exports.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RebuildRuns, RebuildRows, RebuildSkipped, RebuildDuration, BonusConflicts)
	})
}
