package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric this package registers.
const Namespace = "d2dtabu"

var (
	// IterationsTotal counts completed driver iterations across the
	// process lifetime.
	IterationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "iterations_total",
		Help:      "Total number of tabu-search driver iterations completed.",
	})

	// ParetoSetSize tracks the current size of the global Pareto set.
	ParetoSetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "pareto_set_size",
		Help:      "Current number of solutions retained in the global Pareto set.",
	})

	// TabuHitsTotal counts candidate moves whose key was already present
	// in their neighborhood's tabu registry.
	TabuHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tabu_hits_total",
		Help:      "Total number of candidate moves whose key was already tabu, by neighborhood.",
	}, []string{"neighborhood"})

	// MoveEvaluationDuration observes the wall time spent enumerating and
	// scoring one neighborhood's candidate moves for a single parent
	// Solution.
	MoveEvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "move_evaluation_duration_seconds",
		Help:      "Wall time spent enumerating and scoring one neighborhood's candidate moves.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"neighborhood"})
)

// Measure starts a timer and returns a func that records the elapsed
// duration against MoveEvaluationDuration for the named neighborhood.
// Intended for `defer metrics.Measure("swap-1-1")()`.
func Measure(neighborhood string) func() {
	start := time.Now()
	return func() {
		MoveEvaluationDuration.WithLabelValues(neighborhood).Observe(time.Since(start).Seconds())
	}
}
