// Package metrics counts assessments and writes them in the Prometheus text
// exposition format to a file, for pickup by node_exporter's textfile collector.
package metrics

import (
	"fmt"

	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "heatrisk"

// Recorder holds the assessment metrics in a private registry
type Recorder struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	scores      prometheus.Histogram
	rejected    *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Number of scored assessments by risk level.",
		}, []string{"level"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of risk scores.",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inputs_total",
			Help:      "Number of rejected inputs by source.",
		}, []string{"source"}),
	}
	r.registry.MustRegister(r.assessments, r.scores, r.rejected)

	// Pre-create level series so every level is exported, even at zero.
	for _, level := range risktypes.Levels {
		r.assessments.WithLabelValues(level.String())
	}
	return r
}

// ObserveResult records one scored assessment
func (r *Recorder) ObserveResult(result risktypes.Result) {
	r.assessments.WithLabelValues(result.Level.String()).Inc()
	r.scores.Observe(float64(result.Score))
}

// ObserveRejected records a rejected input from the named source (assess, batch, ...)
func (r *Recorder) ObserveRejected(source string) {
	r.rejected.WithLabelValues(source).Inc()
}

// Registry exposes the underlying registry, mainly for tests
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
