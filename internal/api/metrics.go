package api

import "github.com/prometheus/client_golang/prometheus"

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitewise_analyses_total",
			Help: "Completed siting analyses by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitewise_analysis_duration_seconds",
			Help:    "Wall-clock duration of siting analyses.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(analysesTotal, analysisDuration)
}
