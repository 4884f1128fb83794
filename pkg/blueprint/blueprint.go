package blueprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/prng"
	"github.com/aretw0/arbor/pkg/registry"
	"gopkg.in/yaml.v3"
)

// Format is a blueprint encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension. Anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return JSON
	}
	return YAML
}

// Layer is one node of the blueprint tree.
type Layer struct {
	Type   string         `yaml:"type" json:"type"`
	Args   map[string]any `yaml:"args,omitempty" json:"args,omitempty"`
	Layers []Layer        `yaml:"layers,omitempty" json:"layers,omitempty"`
}

// Blueprint is a named, seeded module tree description.
type Blueprint struct {
	Name string `yaml:"name" json:"name"`
	Seed int64  `yaml:"seed" json:"seed"`
	Root Layer  `yaml:"root" json:"root"`
}

// Parse decodes a blueprint.
func Parse(data []byte, format Format) (*Blueprint, error) {
	var bp Blueprint
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("failed to parse blueprint json: %w", err)
		}
	case YAML, "":
		if err := yaml.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("failed to parse blueprint yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return &bp, nil
}

// Load reads and parses a blueprint file.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	bp, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, err
	}
	if bp.Name == "" {
		bp.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return bp, nil
}

// Marshal encodes the blueprint.
func (b *Blueprint) Marshal(format Format) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(b, "", "  ")
	case YAML, "":
		return yaml.Marshal(b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

// Key returns the root key derived from the blueprint seed.
func (b *Blueprint) Key() prng.Key {
	return prng.NewKey(b.Seed)
}

// Validate checks that every layer names a factory known to reg. All
// problems are reported at once.
func (b *Blueprint) Validate(reg *registry.Registry) error {
	var errs []error
	var walk func(p string, l Layer)
	walk = func(p string, l Layer) {
		switch {
		case l.Type == "":
			errs = append(errs, &LayerError{Path: p, Reason: "type is required"})
		default:
			if _, ok := reg.Lookup(l.Type); !ok {
				errs = append(errs, &LayerError{Path: p, Reason: fmt.Sprintf("unknown type %q", l.Type)})
			}
		}
		for i, c := range l.Layers {
			walk(p+".layers["+strconv.Itoa(i)+"]", c)
		}
	}
	walk("root", b.Root)
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Build validates the blueprint and constructs the module tree bottom-up.
func (b *Blueprint) Build(reg *registry.Registry) (*module.Module, error) {
	if err := b.Validate(reg); err != nil {
		return nil, err
	}
	return build(reg, "root", b.Root)
}

func build(reg *registry.Registry, p string, l Layer) (*module.Module, error) {
	children := make([]*module.Module, 0, len(l.Layers))
	for i, c := range l.Layers {
		m, err := build(reg, p+".layers["+strconv.Itoa(i)+"]", c)
		if err != nil {
			return nil, err
		}
		children = append(children, m)
	}
	m, err := reg.Build(l.Type, l.Args, children)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return m, nil
}
