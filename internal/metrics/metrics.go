// Package metrics exports dispatch metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "aegnt"
	subsystem = "brain"
)

// Recorder receives dispatch events.
type Recorder interface {
	ObserveDispatch(intent, system string, d time.Duration)
	IncDegrade(from, reason string)
	IncFastFallback()
	DeepInFlight(delta int)
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for the dispatch latency histogram (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns buckets spanning the fast tier budget up to the
// deep tier timeout.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 30},
	}
}

// Exporter is a Recorder backed by a Prometheus registry.
type Exporter struct {
	registry *prometheus.Registry

	dispatchLatency *prometheus.HistogramVec
	dispatchTotal   *prometheus.CounterVec
	degradeTotal    *prometheus.CounterVec
	fastFallbacks   prometheus.Counter
	deepInFlight    prometheus.Gauge
}

var _ Recorder = (*Exporter)(nil)

// New creates an exporter and registers its collectors together with the Go
// runtime and process collectors.
func New(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{
		registry: registry,
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatch_latency_seconds",
			Help:      "Wall-clock duration of a directive dispatch",
			Buckets:   cfg.LatencyBuckets,
		}, []string{"intent", "system"}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatch_total",
			Help:      "Directives dispatched",
		}, []string{"intent", "system"}),
		degradeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "degrade_total",
			Help:      "Tier failures handled by the degrade policy",
		}, []string{"from", "reason"}),
		fastFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fast_template_fallback_total",
			Help:      "Fast tier answers that fell back to the template",
		}),
		deepInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "deep_in_flight",
			Help:      "Deep tier executions in progress",
		}),
	}

	registry.MustRegister(
		e.dispatchLatency,
		e.dispatchTotal,
		e.degradeTotal,
		e.fastFallbacks,
		e.deepInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return e
}

func (e *Exporter) ObserveDispatch(intent, system string, d time.Duration) {
	e.dispatchLatency.WithLabelValues(intent, system).Observe(d.Seconds())
	e.dispatchTotal.WithLabelValues(intent, system).Inc()
}

func (e *Exporter) IncDegrade(from, reason string) {
	e.degradeTotal.WithLabelValues(from, reason).Inc()
}

func (e *Exporter) IncFastFallback() {
	e.fastFallbacks.Inc()
}

func (e *Exporter) DeepInFlight(delta int) {
	e.deepInFlight.Add(float64(delta))
}

// Registry returns the underlying registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveDispatch(string, string, time.Duration) {}
func (Nop) IncDegrade(string, string)                     {}
func (Nop) IncFastFallback()                              {}
func (Nop) DeepInFlight(int)                              {}
