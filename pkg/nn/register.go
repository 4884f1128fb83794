package nn

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/registry"
)

// Register installs the layer types and their factories in reg.
func Register(reg *registry.Registry) error {
	for _, t := range []*module.Type{LinearType, MLPType, SequentialType} {
		if err := reg.RegisterType(t); err != nil {
			return err
		}
	}
	reg.Register("linear", buildLinear)
	reg.Register("mlp", buildMLP)
	reg.Register("sequential", buildSequential)
	return nil
}

func buildLinear(args map[string]any, children []*module.Module) (*module.Module, error) {
	if len(children) > 0 {
		return nil, fmt.Errorf("linear takes no layers, got %d", len(children))
	}
	var cfg LinearConfig
	if err := registry.Decode(args, &cfg); err != nil {
		return nil, err
	}
	return NewLinear(cfg)
}

func buildMLP(args map[string]any, children []*module.Module) (*module.Module, error) {
	if len(children) > 0 {
		return nil, fmt.Errorf("mlp takes no layers, got %d", len(children))
	}
	var cfg MLPConfig
	if err := registry.Decode(args, &cfg); err != nil {
		return nil, err
	}
	return NewMLP(cfg)
}

func buildSequential(args map[string]any, children []*module.Module) (*module.Module, error) {
	var cfg struct {
		Name string `mapstructure:"name"`
	}
	if err := registry.Decode(args, &cfg); err != nil {
		return nil, err
	}
	return NewSequential(cfg.Name, children...)
}
