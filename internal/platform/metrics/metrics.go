// Package metrics exposes Prometheus counters for generation calls and deck runs.
package metrics

import (
	"net/http"

	"github.com/phrazzld/deckforge/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deckforge"

// Deck modes recorded by DeckBuilt.
const (
	ModeTopic   = "topic"
	ModeContent = "content"
	ModeOutline = "outline"
)

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	attempts   *prometheus.CounterVec
	retries    prometheus.Counter
	fallbacks  prometheus.Counter
	decksBuilt *prometheus.CounterVec
	runFailed  *prometheus.CounterVec
	buildTime  prometheus.Histogram
	jobs       *prometheus.CounterVec
}

var _ generation.Recorder = (*Metrics)(nil)

// New creates the collectors and registers them together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_attempts_total",
				Help:      "Generation calls by outcome.",
			},
			[]string{"outcome"},
		),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_retries_total",
			Help:      "Waits taken after a quota error.",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Calls answered with fallback text after the retry budget ran out.",
		}),
		decksBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decks_built_total",
				Help:      "Decks written to disk by entry mode.",
			},
			[]string{"mode"},
		),
		runFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_failed_total",
				Help:      "Pipeline runs that ended without a deck, by reason.",
			},
			[]string{"reason"},
		),
		buildTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete pipeline runs.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
		jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "job_transitions_total",
				Help:      "Background deck job status changes, by job type and new status.",
			},
			[]string{"type", "status"},
		),
	}

	m.registry.MustRegister(
		m.attempts, m.retries, m.fallbacks, m.decksBuilt, m.runFailed, m.buildTime, m.jobs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAttempt implements generation.Recorder.
func (m *Metrics) ObserveAttempt(outcome generation.Outcome) {
	m.attempts.WithLabelValues(string(outcome)).Inc()
}

// ObserveRetry implements generation.Recorder.
func (m *Metrics) ObserveRetry() { m.retries.Inc() }

// ObserveFallback implements generation.Recorder.
func (m *Metrics) ObserveFallback() { m.fallbacks.Inc() }

// DeckBuilt records a persisted deck and the run's duration in seconds.
func (m *Metrics) DeckBuilt(mode string, seconds float64) {
	m.decksBuilt.WithLabelValues(mode).Inc()
	m.buildTime.Observe(seconds)
}

// RunFailed records a run that ended without a deck.
func (m *Metrics) RunFailed(reason string) {
	m.runFailed.WithLabelValues(reason).Inc()
}

// JobTransition records a background job entering status.
func (m *Metrics) JobTransition(jobType, status string) {
	m.jobs.WithLabelValues(jobType, status).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
