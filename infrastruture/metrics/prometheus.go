// Package metrics exposes explorer run metrics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "explorer"

var _ i.Recorder = &Prometheus{}

// Prometheus records run metrics on its own registry.
type Prometheus struct {
	registry    *prometheus.Registry
	updates     *prometheus.CounterVec
	runsCreated prometheus.Counter
	activeRuns  prometheus.Gauge
}

// NewPrometheus creates and registers the explorer collectors.
func NewPrometheus() (*Prometheus, error) {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Explorer updates by resulting state.",
		}, []string{"state"}),
		runsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_created_total",
			Help:      "Explorer runs created.",
		}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Explorer runs currently held.",
		}),
	}

	for _, c := range []prometheus.Collector{p.updates, p.runsCreated, p.activeRuns} {
		if err := p.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RunCreated implements i.Recorder.
func (p *Prometheus) RunCreated() {
	p.runsCreated.Inc()
	p.activeRuns.Inc()
}

// RunRemoved implements i.Recorder.
func (p *Prometheus) RunRemoved() {
	p.activeRuns.Dec()
}

// Updated implements i.Recorder.
func (p *Prometheus) Updated(state string) {
	p.updates.WithLabelValues(state).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
