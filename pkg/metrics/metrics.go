// Package metrics exposes the Prometheus collectors for the worker and
// executer processes, following the registration style of the teacher's
// pkg/metrics package: package-level collectors registered once, served
// over /metrics via promhttp.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RoundsTotal counts Dijkstra rounds executed by a worker, per query
	// outcome (settled, continue).
	RoundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphworker_worker_rounds_total",
			Help: "Dijkstra rounds executed by this worker",
		},
		[]string{"outcome"},
	)

	// ActiveQueries is the number of live entries in a worker's per-query
	// request table (Busy + Ready).
	ActiveQueries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphworker_worker_active_queries",
			Help: "Number of per-query request-server entries currently held by this worker",
		},
	)

	// RoundDuration measures the wall-clock time of a single Dijkstra
	// step, separating the CPU-bound step from RPC overhead.
	RoundDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphworker_worker_round_duration_seconds",
			Help:    "Duration of a single Dijkstra step on a worker",
			Buckets: prometheus.DefBuckets,
		},
	)

	// QueriesTotal counts completed queries on the executer, by outcome.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphworker_executer_queries_total",
			Help: "Shortest-path queries completed by this executer",
		},
		[]string{"outcome"},
	)

	// QueryDuration measures end-to-end query latency on the executer.
	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphworker_executer_query_duration_seconds",
			Help:    "End-to-end shortest_path_query latency",
			Buckets: prometheus.DefBuckets,
		},
	)

	// QueryRounds records how many coordinator rounds a query took.
	QueryRounds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphworker_executer_query_rounds",
			Help:    "Number of coordinator rounds per query",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// ForgetErrorsTotal counts failed best-effort forget dispatches.
	ForgetErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "graphworker_executer_forget_errors_total",
			Help: "Forget RPCs that failed (best-effort, logged not surfaced)",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RoundsTotal,
		ActiveQueries,
		RoundDuration,
		QueriesTotal,
		QueryDuration,
		QueryRounds,
		ForgetErrorsTotal,
	)
}

// Handler returns the HTTP handler serving the Prometheus exposition
// format, mounted at /metrics by both binaries.
func Handler() http.Handler {
	return promhttp.Handler()
}
