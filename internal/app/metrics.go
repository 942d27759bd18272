package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the service does to a network over its lifetime.
// Each Service carries its own registry so tests never collide on the
// global default.
type Metrics struct {
	registry *prometheus.Registry

	PropagationRuns      prometheus.Counter
	PropagationPasses    prometheus.Counter
	PropagationConflicts prometheus.Counter
	RoleRemaps           prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}
	m.PropagationRuns = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "refmap_propagation_runs_total",
		Help: "Total number of full propagation recomputes",
	})
	m.PropagationPasses = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "refmap_propagation_passes_total",
		Help: "Total number of propagation passes across all recomputes",
	})
	m.PropagationConflicts = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "refmap_propagation_conflicts_total",
		Help: "Total number of attribute conflicts recorded during propagation",
	})
	m.RoleRemaps = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "refmap_role_remaps_total",
		Help: "Total number of stale role mappings displaced by a new mapping",
	})
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
