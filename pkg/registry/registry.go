package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/mitchellh/mapstructure"
)

var (
	// ErrUnknownType is returned when no factory is registered under a name.
	ErrUnknownType = errors.New("unknown module type")
	// ErrDuplicateType is returned when a different type is registered under a taken name.
	ErrDuplicateType = errors.New("module type already registered")
)

// Factory builds a module from decoded blueprint arguments. children holds
// the already built nested layers, in declaration order.
type Factory func(args map[string]any, children []*module.Module) (*module.Module, error)

// Registry maps names to module types and their factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	types     map[string]*module.Type
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		types:     make(map[string]*module.Type),
	}
}

// Register adds a factory under name. If a factory with the same name
// exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// RegisterType records t under its own name. Registering the same *Type
// twice is allowed; a different type with the same name is rejected.
func (r *Registry) RegisterType(t *module.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.types[t.Name()]; ok && prev != t {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name())
	}
	r.types[t.Name()] = t
	return nil
}

// Type looks up a registered module type by name.
func (r *Registry) Type(name string) (*module.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[name]
	return fn, ok
}

// Build looks up a factory by name and runs it.
func (r *Registry) Build(name string, args map[string]any, children []*module.Module) (*module.Module, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	m, err := fn(args, children)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return m, nil
}

// Types returns the registered factory names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Decode copies factory arguments into a config struct tagged with
// `mapstructure`. Unknown keys are an error; numbers decoded from YAML or
// JSON are converted to the target field type.
func Decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
