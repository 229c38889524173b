package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query pipeline Prometheus metrics.
var (
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusbot",
			Name:      "answers_total",
			Help:      "Total number of answered queries by source",
		},
		[]string{"source"},
	)

	AnswerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusbot",
			Name:      "answer_duration_seconds",
			Help:      "End-to-end query answer duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"source"},
	)

	ClassifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusbot",
			Name:      "classify_duration_seconds",
			Help:      "Intent classification duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"status"},
	)

	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusbot",
			Name:      "search_outcomes_total",
			Help:      "Domain search outcomes",
		},
		[]string{"domain", "status"},
	)

	RephraseAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusbot",
			Name:      "rephrase_attempts_total",
			Help:      "Generative rephrase attempts per credential",
		},
		[]string{"key", "status"}, // "ok" / "error"
	)

	RephraseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusbot",
			Name:      "rephrase_duration_seconds",
			Help:      "Generative rephrase request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"key"},
	)

	SessionsSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campusbot",
			Name:      "sessions_swept_total",
			Help:      "Idle sessions removed by the janitor",
		},
	)
)

var registerOnce sync.Once

// Register registers every campusbot metric with the default registry.
// Called explicitly from main; repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			AnswersTotal,
			AnswerDuration,
			ClassifyDuration,
			SearchOutcomesTotal,
			RephraseAttemptsTotal,
			RephraseDuration,
			SessionsSweptTotal,
		)
	})
}
