package nn

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/prng"
)

// ErrInvalidConfig is returned for non-positive layer dimensions.
var ErrInvalidConfig = errors.New("invalid layer config")

// LinearType is a dense layer: y = x·w + b.
var LinearType = module.MustDefine("Linear",
	module.Schema{}.
		With(module.Parameter, "w", "b").
		With(module.State, "n").
		With(module.Plain, "din", "dout", "name"),
	module.WithSetup(nameLinear),
)

// LinearConfig configures a Linear layer.
type LinearConfig struct {
	Din  int    `mapstructure:"din"`
	Dout int    `mapstructure:"dout"`
	Name string `mapstructure:"name"`
}

// NewLinear builds a Linear layer with a Deferred uniform(-1/√din, 1/√din)
// weight matrix of shape [din, dout], a Deferred zero bias and a call
// counter n starting at 1.
func NewLinear(cfg LinearConfig) (*module.Module, error) {
	if cfg.Din <= 0 || cfg.Dout <= 0 {
		return nil, fmt.Errorf("%w: linear %dx%d", ErrInvalidConfig, cfg.Din, cfg.Dout)
	}
	limit := 1 / math.Sqrt(float64(cfg.Din))
	return LinearType.New(map[string]any{
		"w": module.Defer(func(k prng.Key) (any, error) {
			return Uniform(k.Rand(), -limit, limit, cfg.Din, cfg.Dout), nil
		}),
		"b": module.Defer(func(prng.Key) (any, error) {
			return Zeros(cfg.Dout), nil
		}),
		"n":    1,
		"din":  cfg.Din,
		"dout": cfg.Dout,
		"name": cfg.Name,
	})
}

// nameLinear gives unnamed layers a name derived from their dimensions.
func nameLinear(m *module.Module, _ prng.Key) error {
	if name, _ := m.Plain("name").(string); name != "" {
		return nil
	}
	return m.Set("name", fmt.Sprintf("linear_%dx%d", m.Plain("din"), m.Plain("dout")))
}
