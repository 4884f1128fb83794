package module

import (
	"fmt"
	"sort"
)

// Module is a composite tree node with named, kind-tagged fields.
//
// A Module is owned by one caller at a time; none of its methods are safe for
// concurrent use when one of them mutates.
type Module struct {
	typ         *Type
	slots       []Value
	plain       []any
	initialized bool
	training    bool
}

// Type returns the module's type.
func (m *Module) Type() *Type { return m.typ }

// Initialized reports whether Init has completed on this instance.
func (m *Module) Initialized() bool { return m.initialized }

// Training reports the training/evaluation flag.
func (m *Module) Training() bool { return m.training }

// Get returns the value of a Parameter, State or ModuleRef field.
// It panics if name is not such a field.
func (m *Module) Get(name string) Value {
	i := m.mustIndex(name)
	if m.typ.schema[i].Kind == Plain {
		panic(fmt.Sprintf("module: field %s.%s is plain, use Plain", m.typ.name, name))
	}
	return m.slots[i]
}

// Sub returns a ModuleRef field holding a single module, or nil.
func (m *Module) Sub(name string) *Module {
	sub, _ := m.Get(name).(*Module)
	return sub
}

// Plain returns the value of a Plain field. It panics if name is not a Plain field.
func (m *Module) Plain(name string) any {
	i := m.mustIndex(name)
	if m.typ.schema[i].Kind != Plain {
		panic(fmt.Sprintf("module: field %s.%s is %s, use Get", m.typ.name, name, m.typ.schema[i].Kind))
	}
	return m.plain[i]
}

// Set assigns a field. Non-Value inputs for leaf fields are wrapped in Leaf.
// Seq and Map values are copied, so later changes to the caller's containers
// do not reach the tree.
func (m *Module) Set(name string, v any) error {
	i, ok := m.typ.index[name]
	if !ok {
		return &FieldError{Type: m.typ.name, Field: name, Reason: ErrUnknownField.Error(), Err: ErrUnknownField}
	}
	f := m.typ.schema[i]
	if f.Kind == Plain {
		switch v.(type) {
		case Value:
			return &FieldError{Type: m.typ.name, Field: name, Reason: fmt.Sprintf("plain field cannot hold %T", v)}
		}
		m.plain[i] = v
		return nil
	}
	val := Wrap(v)
	if err := check(f.Kind, val); err != nil {
		return &FieldError{Type: m.typ.name, Field: name, Reason: err.Error()}
	}
	m.slots[i] = copyContainers(val)
	return nil
}

// MustSet is like Set but panics on error.
func (m *Module) MustSet(name string, v any) {
	if err := m.Set(name, v); err != nil {
		panic(err)
	}
}

// Clone returns a deep copy of the tree. Modules and containers are copied;
// leaf payloads are shared.
func (m *Module) Clone() *Module {
	out, _ := visitor{mode: visitCopy}.module(nil, m)
	return out
}

func (m *Module) String() string {
	return fmt.Sprintf("%s(initialized=%t, training=%t)", m.typ.name, m.initialized, m.training)
}

func (m *Module) mustIndex(name string) int {
	i, ok := m.typ.index[name]
	if !ok {
		panic(fmt.Sprintf("module: %s has no field %q", m.typ.name, name))
	}
	return i
}

func (m *Module) shallow() *Module {
	out := &Module{
		typ:         m.typ,
		slots:       make([]Value, len(m.slots)),
		plain:       make([]any, len(m.plain)),
		initialized: m.initialized,
		training:    m.training,
	}
	copy(out.plain, m.plain)
	return out
}

func sortedNames(values map[string]any) []string {
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
