// Package metrics collects Prometheus metrics of a single pipeline run and
// exports them in the node_exporter textfile format.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var ErrExportFailed = errors.New("metrics export failed")

// Attempt outcomes used as label values.
const (
	OutcomeSuccess   = "success"
	OutcomeTransient = "transient"
	OutcomeTerminal  = "terminal"
)

// Recorder owns a private registry with all run metrics.
type Recorder struct {
	namespace string
	registry  *prometheus.Registry

	attempts      *prometheus.CounterVec
	points        *prometheus.CounterVec
	backoff       prometheus.Counter
	observations  prometheus.Gauge
	countries     prometheus.Gauge
	stageDuration *prometheus.GaugeVec
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// New creates a Recorder with all collectors registered.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "windreport",
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.attempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "forecast",
		Name:      "attempts_total",
		Help:      "Forecast API attempts by outcome.",
	}, []string{"outcome"})
	r.points = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "forecast",
		Name:      "points_total",
		Help:      "Grid points fetched, by final result.",
	}, []string{"result"})
	r.backoff = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "forecast",
		Name:      "backoff_seconds_total",
		Help:      "Time spent sleeping between retries.",
	})
	r.observations = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "pipeline",
		Name:      "observations",
		Help:      "Usable wind observations after processing.",
	})
	r.countries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "pipeline",
		Name:      "countries",
		Help:      "Countries with at least one observation in the region.",
	})
	r.stageDuration = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Wall time of each pipeline stage.",
	}, []string{"stage"})

	r.registry.MustRegister(r.attempts, r.points, r.backoff, r.observations, r.countries, r.stageDuration)

	return r
}

// Registry exposes the underlying registry as a gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordAttempt counts one forecast attempt.
func (r *Recorder) RecordAttempt(outcome string) {
	r.attempts.WithLabelValues(outcome).Inc()
}

// RecordPoint counts the final result of one grid point.
func (r *Recorder) RecordPoint(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	r.points.WithLabelValues(result).Inc()
}

// RecordBackoff adds a retry sleep.
func (r *Recorder) RecordBackoff(d time.Duration) {
	r.backoff.Add(d.Seconds())
}

// SetObservations sets the number of usable observations.
func (r *Recorder) SetObservations(n int) {
	r.observations.Set(float64(n))
}

// SetCountries sets the number of aggregated countries.
func (r *Recorder) SetCountries(n int) {
	r.countries.Set(float64(n))
}

// ObserveStage stores the duration of a pipeline stage.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// WriteTextfile writes all metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return nil
}
