package nn

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/module"
)

// MLPType is a two layer perceptron.
var MLPType = module.MustDefine("MLP", module.Schema{}.
	With(module.ModuleRef, "linear1", "linear2").
	With(module.Plain, "din", "dmid", "dout", "name"))

// MLPConfig configures an MLP.
type MLPConfig struct {
	Din  int    `mapstructure:"din"`
	Dmid int    `mapstructure:"dmid"`
	Dout int    `mapstructure:"dout"`
	Name string `mapstructure:"name"`
}

// NewMLP builds linear1 (din→dmid) and linear2 (dmid→dout).
func NewMLP(cfg MLPConfig) (*module.Module, error) {
	if cfg.Name == "" {
		cfg.Name = "mlp"
	}
	l1, err := NewLinear(LinearConfig{Din: cfg.Din, Dout: cfg.Dmid, Name: "linear1"})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}
	l2, err := NewLinear(LinearConfig{Din: cfg.Dmid, Dout: cfg.Dout, Name: "linear2"})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return MLPType.New(map[string]any{
		"linear1": l1,
		"linear2": l2,
		"din":     cfg.Din,
		"dmid":    cfg.Dmid,
		"dout":    cfg.Dout,
		"name":    cfg.Name,
	})
}
