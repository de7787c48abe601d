package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the HTTP API
type Metrics struct {
	requests       *prometheus.CounterVec
	rankDuration   *prometheus.HistogramVec
	loadErrors     *prometheus.CounterVec
	trialsScored   prometheus.Gauge
	steelsReported prometheus.Gauge
}

// NewMetrics creates the API collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "furnace_rank_requests_total",
				Help: "API requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		rankDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "furnace_rank_ranking_duration_seconds",
				Help:    "Time to load and score the trial source.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		loadErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "furnace_rank_load_errors_total",
				Help: "Failed loads of the trial source by kind.",
			},
			[]string{"kind"},
		),
		trialsScored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "furnace_rank_trials_scored",
				Help: "Number of trials scored by the latest ranking.",
			},
		),
		steelsReported: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "furnace_rank_steel_types",
				Help: "Number of distinct steel types in the latest ranking.",
			},
		),
	}
}
