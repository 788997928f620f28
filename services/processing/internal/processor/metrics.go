package processor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StageClean    = "clean"
	StageAnnotate = "annotate"
	StageStore    = "store"

	OutcomeKept    = "kept"
	OutcomeDropped = "dropped"
	OutcomeFailed  = "failed"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	Records            *prometheus.CounterVec
	MessagesFailed     *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
}

// NewMetrics registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtagger_records_total",
			Help: "Records seen per pipeline stage and outcome",
		}, []string{"stage", "outcome"}),

		MessagesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtagger_messages_failed_total",
			Help: "Raw job messages that could not be processed",
		}, []string{"reason"}),

		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobtagger_message_processing_duration_seconds",
			Help:    "Time to clean, annotate and store one raw job message",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
	}
}

func (m *Metrics) observeStage(stage string, kept, dropped int) {
	m.Records.WithLabelValues(stage, OutcomeKept).Add(float64(kept))
	m.Records.WithLabelValues(stage, OutcomeDropped).Add(float64(dropped))
}

func (m *Metrics) observeDuration(start time.Time) {
	m.ProcessingDuration.Observe(time.Since(start).Seconds())
}
