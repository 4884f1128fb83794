package observability

import (
	"errors"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for module tree operations.
type Metrics struct {
	SetupHooks          *prometheus.CounterVec
	DeferredResolved    *prometheus.CounterVec
	Merges              *prometheus.CounterVec
	StructureMismatches prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		SetupHooks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_setup_hooks_total",
				Help: "Total number of setup hooks run by Init",
			},
			[]string{"type"},
		),
		DeferredResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_deferred_resolved_total",
				Help: "Total number of deferred values resolved by Init",
			},
			[]string{"type"},
		),
		Merges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_merges_total",
				Help: "Total number of merges by mode",
			},
			[]string{"mode"},
		),
		StructureMismatches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "arbor_structure_mismatches_total",
				Help: "Total number of merges rejected for incompatible structure",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.SetupHooks, m.DeferredResolved, m.Merges, m.StructureMismatches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns module hooks that record into m.
func (m *Metrics) Hooks() module.Hooks {
	return module.Hooks{
		OnSetup: func(e *module.SetupEvent) {
			m.SetupHooks.WithLabelValues(e.Type).Inc()
		},
		OnResolve: func(e *module.ResolveEvent) {
			m.DeferredResolved.WithLabelValues(e.Type).Inc()
		},
		OnMerge: func(e *module.MergeEvent) {
			if errors.Is(e.Err, module.ErrStructureMismatch) {
				m.StructureMismatches.Inc()
				return
			}
			if e.Err != nil {
				return
			}
			mode := "pure"
			if e.InPlace {
				mode = "inplace"
			}
			m.Merges.WithLabelValues(mode).Inc()
		},
	}
}
