// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "regexplorer"

var (
	// Evaluations counts graded and previewed patterns by kind (live, submission)
	// and outcome (correct, incorrect, matched, unmatched, pattern_error, empty).
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Pattern evaluations by kind and outcome.",
	}, []string{"kind", "outcome"})

	EvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent compiling and matching patterns.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5},
	}, []string{"kind"})

	ProgressWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_writes_total",
		Help:      "Progress rows created or updated.",
	}, []string{"op"})

	CatalogPuzzles = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_puzzles",
		Help:      "Puzzles loaded from the catalog at startup.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
