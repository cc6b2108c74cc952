// Package metrics provides Prometheus instrumentation for the conditioning
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "condition"

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Registry holds the pipeline collectors.
type Registry struct {
	StagesTotal      *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	RunsTotal        *prometheus.CounterVec
	SamplesProcessed prometheus.Counter
}

// NewRegistry creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		StagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "stages_total",
				Help:      "Total number of pipeline stages by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "stage_duration_seconds",
				Help:      "Time spent executing a pipeline stage",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"kind"},
		),

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "runs_total",
				Help:      "Total number of pipeline runs by outcome",
			},
			[]string{"outcome"},
		),

		SamplesProcessed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "samples_processed_total",
				Help:      "Total number of input samples (rows times channels) accepted by successful runs",
			},
		),
	}
}

// ObserveStage records one stage outcome and, unless skipped, its duration.
func (r *Registry) ObserveStage(kind, outcome string, seconds float64) {
	if r == nil {
		return
	}

	r.StagesTotal.WithLabelValues(kind, outcome).Inc()

	if outcome != OutcomeSkipped {
		r.StageDuration.WithLabelValues(kind).Observe(seconds)
	}
}

// ObserveRun records one run outcome and the number of samples it consumed.
func (r *Registry) ObserveRun(outcome string, samples int) {
	if r == nil {
		return
	}

	r.RunsTotal.WithLabelValues(outcome).Inc()

	if outcome == OutcomeOK {
		r.SamplesProcessed.Add(float64(samples))
	}
}
