// Package metrics holds the Prometheus collectors shared by the solver packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatrixBuildDuration tracks how long the pairwise overlap precomputation takes.
	MatrixBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cluefinder_matrix_build_duration_seconds",
		Help:    "Overlap matrix build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	})

	// MatrixCells is the number of entries in the most recently built matrix.
	MatrixCells = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cluefinder_matrix_cells",
		Help: "Number of overlap entries held by the precomputed matrix",
	})

	// ScoreDuration tracks one Best() call by objective.
	ScoreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cluefinder_score_duration_seconds",
		Help:    "Clue scoring duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"objective"})

	// Rounds counts elimination rounds by mode.
	Rounds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cluefinder_rounds_total",
		Help: "Total elimination rounds by mode",
	}, []string{"mode"})

	// Converged counts sessions that reached a terminal candidate set, by outcome.
	Converged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cluefinder_converged_total",
		Help: "Total converged solves by outcome",
	}, []string{"outcome"})
)
