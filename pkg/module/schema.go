package module

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/prng"
)

// Field declares one named slot of a module type.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered field list of a module type. Order is significant:
// it is the leaf enumeration order of the tree protocol.
type Schema []Field

// With returns a copy of s with fields of the given kind appended.
func (s Schema) With(kind Kind, names ...string) Schema {
	out := make(Schema, len(s), len(s)+len(names))
	copy(out, s)
	for _, n := range names {
		out = append(out, Field{Name: n, Kind: kind})
	}
	return out
}

// SetupFunc is a per-type hook run once by Init, before the instance's
// Deferred values are resolved.
type SetupFunc func(m *Module, key prng.Key) error

// Type is a module type: a name, a schema and an optional setup hook.
// Types are immutable once defined.
type Type struct {
	name   string
	schema Schema
	index  map[string]int
	subs   []int
	setup  SetupFunc
}

// TypeOption configures a Type at definition time.
type TypeOption func(*Type)

// WithSetup registers the type's setup hook.
func WithSetup(fn SetupFunc) TypeOption {
	return func(t *Type) {
		t.setup = fn
	}
}

// Define validates schema and builds a module type.
func Define(name string, schema Schema, opts ...TypeOption) (*Type, error) {
	t := &Type{
		name:   name,
		schema: append(Schema(nil), schema...),
		index:  make(map[string]int, len(schema)),
	}

	var errs []error
	if name == "" {
		errs = append(errs, &FieldError{Type: "<anonymous>", Reason: "type name is required"})
	}
	for i, f := range t.schema {
		switch {
		case f.Name == "":
			errs = append(errs, &FieldError{Type: name, Reason: fmt.Sprintf("field %d has no name", i)})
			continue
		case !f.Kind.valid():
			errs = append(errs, &FieldError{Type: name, Field: f.Name, Reason: fmt.Sprintf("invalid kind %s", f.Kind)})
		}
		if _, dup := t.index[f.Name]; dup {
			errs = append(errs, &FieldError{Type: name, Field: f.Name, Reason: "declared twice"})
			continue
		}
		t.index[f.Name] = i
		if f.Kind == ModuleRef {
			t.subs = append(t.subs, i)
		}
	}
	if err := schemaErr(errs); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustDefine is like Define but panics on an invalid schema. It is meant for
// package-level type declarations.
func MustDefine(name string, schema Schema, opts ...TypeOption) *Type {
	t, err := Define(name, schema, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Schema returns a copy of the declared fields.
func (t *Type) Schema() Schema { return append(Schema(nil), t.schema...) }

// Field looks up a declared field.
func (t *Type) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.schema[i], true
}

// HasSetup reports whether the type declares a setup hook.
func (t *Type) HasSetup() bool { return t.setup != nil }

// New constructs an instance. Fields missing from values start as Nothing
// (or nil for Plain fields); unknown names and values that do not fit their
// field's kind are rejected.
func (t *Type) New(values map[string]any) (*Module, error) {
	m := t.zero()
	var errs []error
	for _, name := range sortedNames(values) {
		if err := m.Set(name, values[name]); err != nil {
			errs = append(errs, err)
		}
	}
	if err := schemaErr(errs); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(values map[string]any) *Module {
	m, err := t.New(values)
	if err != nil {
		panic(err)
	}
	return m
}

func (t *Type) zero() *Module {
	m := &Module{
		typ:      t,
		slots:    make([]Value, len(t.schema)),
		plain:    make([]any, len(t.schema)),
		training: true,
	}
	for i, f := range t.schema {
		if f.Kind != Plain {
			m.slots[i] = Nothing{}
		}
	}
	return m
}

// check validates that v fits a field of the given kind.
func check(kind Kind, v Value) error {
	switch x := v.(type) {
	case Nothing:
		return nil
	case Leaf, *Deferred:
		if !kind.IsLeaf() {
			return fmt.Errorf("%s field cannot hold a leaf (%T)", kind, v)
		}
		return nil
	case *Module:
		if kind != ModuleRef {
			return fmt.Errorf("%s field cannot hold a module", kind)
		}
		if x == nil {
			return fmt.Errorf("nil module")
		}
		return nil
	case Seq:
		for i, e := range x {
			if err := check(kind, e); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	case Map:
		for _, k := range sortedKeys(x) {
			if err := check(kind, x[k]); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
}
