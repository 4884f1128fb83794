package arbor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/blueprint"
	"github.com/aretw0/arbor/pkg/inspect"
	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/nn"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/prng"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrLeafCount is returned by Check when a round-trip changes the number of leaves.
var ErrLeafCount = errors.New("round-trip changed leaf count")

// Engine is the high-level entry point for the arbor library.
// It binds a layer registry, a logger and hooks, and applies them to every
// tree operation it runs.
type Engine struct {
	registry   *registry.Registry
	hooks      module.Hooks
	logger     *slog.Logger
	registerer prometheus.Registerer
	metrics    *observability.Metrics
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks for Init and Update.
func WithHooks(hooks module.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRegistry replaces the default registry (which holds the nn layers).
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithMetrics registers Prometheus counters with reg and records every
// operation into them.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.registry == nil {
		eng.registry = registry.New()
		if err := nn.Register(eng.registry); err != nil {
			return nil, fmt.Errorf("failed to register layers: %w", err)
		}
	}

	// Ensure logger is initialized so module operations never get nil
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if eng.registerer != nil {
		metrics, err := observability.NewMetrics(eng.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		eng.metrics = metrics
		eng.hooks = observability.Combine(eng.hooks, metrics.Hooks())
	}

	return eng, nil
}

// Registry returns the engine's layer registry.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Metrics returns the engine's collectors, or nil without WithMetrics.
func (e *Engine) Metrics() *observability.Metrics { return e.metrics }

// Model is a module tree built from a blueprint.
type Model struct {
	Blueprint *blueprint.Blueprint
	Tree      *module.Module
}

// Key returns the root key derived from the blueprint seed.
func (m *Model) Key() prng.Key { return m.Blueprint.Key() }

// Load reads a blueprint file and builds it.
func (e *Engine) Load(path string) (*Model, error) {
	bp, err := blueprint.Load(path)
	if err != nil {
		return nil, err
	}
	return e.Build(bp)
}

// Build constructs the module tree described by bp.
func (e *Engine) Build(bp *blueprint.Blueprint) (*Model, error) {
	tree, err := bp.Build(e.registry)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Built module tree.", "model", bp.Name, "type", tree.Type().Name(),
		"leaves", len(tree.Leaves(module.KeepNothing)))
	return &Model{Blueprint: bp, Tree: tree}, nil
}

func (e *Engine) options() []module.Option {
	return []module.Option{module.WithLogger(e.logger), module.WithHooks(e.hooks)}
}

// Init returns an initialized copy of m.
func (e *Engine) Init(m *module.Module, key prng.Key) (*module.Module, error) {
	out, err := m.Init(key, e.options()...)
	if err != nil {
		e.logger.Error("Init failed.", "type", m.Type().Name(), "error", err)
		return nil, err
	}
	return out, nil
}

// Update merges other into m, returning a new tree.
func (e *Engine) Update(m, other *module.Module) (*module.Module, error) {
	return m.Update(other, e.options()...)
}

// Check round-trips m through Flatten and Reconstruct in both traversal
// modes and verifies the result is structurally identical.
func (e *Engine) Check(m *module.Module) error {
	for _, mode := range []module.Mode{module.SkipNothing, module.KeepNothing} {
		leaves, desc := m.Flatten(mode)
		back, err := module.Reconstruct(desc, leaves)
		if err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		again, backDesc := back.Flatten(mode)
		if err := module.Compatible(desc, backDesc); err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		if n := len(again); n != len(leaves) {
			return fmt.Errorf("%w: %s: %d vs %d", ErrLeafCount, mode, len(leaves), n)
		}
	}
	return nil
}

// Format selects a Report rendering.
type Format string

const (
	FormatRepr  Format = "repr"
	FormatTable Format = "table"
	FormatGraph Format = "graph"
)

// Report renders m. FormatTable produces markdown, FormatGraph a Mermaid
// flowchart and anything else the indented Repr.
func (e *Engine) Report(m *module.Module, format Format, opts ...inspect.Option) string {
	switch format {
	case FormatTable:
		return inspect.Tabulate(m)
	case FormatGraph:
		return graph.GenerateMermaid(m, nil)
	default:
		return inspect.Repr(m, opts...)
	}
}
