package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the prometheus instruments for the annealing job service.
type metrics struct {
	jobsStarted   prometheus.Counter
	jobsCompleted *prometheus.CounterVec
	jobsRunning   prometheus.Gauge
	bestError     prometheus.Gauge
	solveDuration prometheus.Histogram
}

// newMetrics registers the service instruments with the given registerer.
// Each server owns its own registry so tests can create servers freely.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		jobsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tunnl",
			Name:      "jobs_started_total",
			Help:      "Number of annealing jobs started.",
		}),
		jobsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunnl",
			Name:      "jobs_completed_total",
			Help:      "Number of annealing jobs finished, by terminal status.",
		}, []string{"status"}),
		jobsRunning: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tunnl",
			Name:      "jobs_running",
			Help:      "Number of annealing jobs currently running.",
		}),
		bestError: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tunnl",
			Name:      "best_error",
			Help:      "Best tour error reported by the most recent progress snapshot.",
		}),
		solveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tunnl",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of completed annealing jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}
