package scorer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Panel rows produced, labelled by outcome: "defined", "undefined" or
	// "skipped".
	rowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgraph_scorer_rows_total",
			Help: "Total number of panel rows processed by the scorer",
		},
		[]string{"outcome"},
	)

	scoreDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "edgraph_scorer_score_duration_seconds",
			Help:    "Time spent computing the measures of a single panel row",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	lastRunRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "edgraph_scorer_last_run_rows",
			Help: "Number of rows written by the most recent batch run",
		},
	)
)
