package module

import (
	"fmt"
	"slices"
)

// Mode selects how Flatten treats Nothing.
type Mode uint8

const (
	// SkipNothing yields only present leaves (Leaf and *Deferred). Nothing
	// positions are recorded in the descriptor and consume no leaf.
	SkipNothing Mode = iota
	// KeepNothing yields Nothing as an ordinary leaf.
	KeepNothing
)

func (m Mode) String() string {
	if m == KeepNothing {
		return "keep-nothing"
	}
	return "skip-nothing"
}

type slotTag uint8

const (
	slotLeaf slotTag = iota
	slotAbsent
	slotSeq
	slotMap
	slotModule
)

type shape struct {
	tag      slotTag
	keys     []string
	children []*shape
	module   *Descriptor
}

// Descriptor is the reconstruction recipe for one module: its type, static
// Plain values, flags and the nested shape of each field.
type Descriptor struct {
	typ         *Type
	plain       []any
	fields      []*shape
	initialized bool
	training    bool
	mode        Mode
	kinds       []Kind
}

// Type returns the described module type.
func (d *Descriptor) Type() *Type { return d.typ }

// Mode returns the traversal mode the descriptor was produced with.
func (d *Descriptor) Mode() Mode { return d.mode }

// NumLeaves is the number of leaves Reconstruct expects.
func (d *Descriptor) NumLeaves() int { return len(d.kinds) }

// Kinds returns the kind of each leaf position, aligned with Flatten output.
func (d *Descriptor) Kinds() []Kind { return slices.Clone(d.kinds) }

// Flatten returns the ordered leaves of m and the descriptor needed to
// rebuild it. Fields are visited in declaration order, sequences by index
// and mappings by sorted key.
func (m *Module) Flatten(mode Mode) ([]Value, *Descriptor) {
	f := &flattener{mode: mode}
	d := f.module(m)
	return f.leaves, d
}

// Leaves is Flatten without the descriptor.
func (m *Module) Leaves(mode Mode) []Value {
	leaves, _ := m.Flatten(mode)
	return leaves
}

type flattener struct {
	mode   Mode
	leaves []Value
	kinds  []Kind
}

func (f *flattener) module(m *Module) *Descriptor {
	start := len(f.kinds)
	d := &Descriptor{
		typ:         m.typ,
		plain:       make([]any, len(m.plain)),
		fields:      make([]*shape, len(m.slots)),
		initialized: m.initialized,
		training:    m.training,
		mode:        f.mode,
	}
	copy(d.plain, m.plain)
	for i, fs := range m.typ.schema {
		if fs.Kind == Plain {
			continue
		}
		d.fields[i] = f.value(fs.Kind, m.slots[i])
	}
	d.kinds = f.kinds[start:len(f.kinds):len(f.kinds)]
	return d
}

func (f *flattener) value(kind Kind, v Value) *shape {
	switch x := v.(type) {
	case Nothing:
		if f.mode == SkipNothing {
			return &shape{tag: slotAbsent}
		}
		f.push(kind, x)
		return &shape{tag: slotLeaf}
	case Leaf, *Deferred:
		f.push(kind, x)
		return &shape{tag: slotLeaf}
	case *Module:
		return &shape{tag: slotModule, module: f.module(x)}
	case Seq:
		s := &shape{tag: slotSeq, children: make([]*shape, len(x))}
		for i, e := range x {
			s.children[i] = f.value(kind, e)
		}
		return s
	case Map:
		keys := sortedKeys(x)
		s := &shape{tag: slotMap, keys: keys, children: make([]*shape, len(keys))}
		for i, k := range keys {
			s.children[i] = f.value(kind, x[k])
		}
		return s
	default:
		// Set checks and copies containers, so this is only reachable when a
		// caller writes into a Seq or Map obtained from Get.
		panic(fmt.Sprintf("module: cannot flatten %T", v))
	}
}

func (f *flattener) push(kind Kind, v Value) {
	f.leaves = append(f.leaves, v)
	f.kinds = append(f.kinds, kind)
}

// Reconstruct rebuilds a module from a descriptor and a leaf slice produced
// by (or aligned with) Flatten. Every leaf must be leaf-like.
func Reconstruct(d *Descriptor, leaves []Value) (*Module, error) {
	if len(leaves) != d.NumLeaves() {
		return nil, fmt.Errorf("%w: %s expects %d leaves, got %d", ErrLeafCount, d.typ.name, d.NumLeaves(), len(leaves))
	}
	r := &rebuilder{leaves: leaves}
	return r.module(nil, d)
}

type rebuilder struct {
	leaves []Value
	pos    int
}

func (r *rebuilder) module(p Path, d *Descriptor) (*Module, error) {
	m := &Module{
		typ:         d.typ,
		slots:       make([]Value, len(d.fields)),
		plain:       make([]any, len(d.plain)),
		initialized: d.initialized,
		training:    d.training,
	}
	copy(m.plain, d.plain)
	for i, fs := range d.typ.schema {
		if fs.Kind == Plain {
			continue
		}
		v, err := r.value(p.Field(fs.Name), fs.Kind, d.fields[i])
		if err != nil {
			return nil, err
		}
		m.slots[i] = v
	}
	return m, nil
}

func (r *rebuilder) value(p Path, kind Kind, s *shape) (Value, error) {
	switch s.tag {
	case slotAbsent:
		return Nothing{}, nil
	case slotLeaf:
		v := r.leaves[r.pos]
		r.pos++
		if v == nil {
			return Nothing{}, nil
		}
		if !IsLeafLike(v) || (kind == ModuleRef && !IsNothing(v)) {
			return nil, fmt.Errorf("%s: %w: %T", p, ErrInvalidLeaf, v)
		}
		return v, nil
	case slotModule:
		return r.module(p, s.module)
	case slotSeq:
		out := make(Seq, len(s.children))
		for i, c := range s.children {
			v, err := r.value(p.Index(i), kind, c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case slotMap:
		out := make(Map, len(s.children))
		for i, c := range s.children {
			v, err := r.value(p.Key(s.keys[i]), kind, c)
			if err != nil {
				return nil, err
			}
			out[s.keys[i]] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unknown slot tag %d", p, s.tag)
	}
}

// Compatible reports, as a *StructureMismatchError, the first position where
// a and b differ in type, field names, kinds, container lengths or mapping
// keys. Leaf, Nothing and Deferred slots are interchangeable.
func Compatible(a, b *Descriptor) error {
	return compatModule(nil, a, b)
}

func compatModule(p Path, a, b *Descriptor) error {
	if a.typ != b.typ {
		if a.typ.name != b.typ.name {
			return mismatch(p, "type %s vs %s", a.typ.name, b.typ.name)
		}
		if len(a.typ.schema) != len(b.typ.schema) {
			return mismatch(p, "%s declares %d fields vs %d", a.typ.name, len(a.typ.schema), len(b.typ.schema))
		}
		for i := range a.typ.schema {
			if a.typ.schema[i] != b.typ.schema[i] {
				fa, fb := a.typ.schema[i], b.typ.schema[i]
				return mismatch(p, "field %d is %s %s vs %s %s", i, fa.Name, fa.Kind, fb.Name, fb.Kind)
			}
		}
	}
	for i, fs := range a.typ.schema {
		if fs.Kind == Plain {
			continue
		}
		if err := compatShape(p.Field(fs.Name), a.fields[i], b.fields[i]); err != nil {
			return err
		}
	}
	return nil
}

func compatShape(p Path, a, b *shape) error {
	at, bt := a.tag, b.tag
	if at == slotAbsent {
		at = slotLeaf
	}
	if bt == slotAbsent {
		bt = slotLeaf
	}
	if at != bt {
		return mismatch(p, "%s vs %s", a.describe(), b.describe())
	}
	switch a.tag {
	case slotModule:
		if b.module == nil {
			return mismatch(p, "module vs %s", b.describe())
		}
		return compatModule(p, a.module, b.module)
	case slotSeq:
		if len(a.children) != len(b.children) {
			return mismatch(p, "sequence length %d vs %d", len(a.children), len(b.children))
		}
		for i := range a.children {
			if err := compatShape(p.Index(i), a.children[i], b.children[i]); err != nil {
				return err
			}
		}
	case slotMap:
		if !slices.Equal(a.keys, b.keys) {
			return mismatch(p, "mapping keys %v vs %v", a.keys, b.keys)
		}
		for i := range a.children {
			if err := compatShape(p.Key(a.keys[i]), a.children[i], b.children[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *shape) describe() string {
	switch s.tag {
	case slotLeaf, slotAbsent:
		return "leaf"
	case slotSeq:
		return fmt.Sprintf("sequence[%d]", len(s.children))
	case slotMap:
		return fmt.Sprintf("mapping[%d]", len(s.children))
	case slotModule:
		return "module " + s.module.typ.name
	}
	return "unknown"
}

func mismatch(p Path, format string, args ...any) error {
	return &StructureMismatchError{Path: p.String(), Reason: fmt.Sprintf(format, args...)}
}

// MapLeaves flattens m, applies fn to every leaf together with its kind and
// reconstructs the result. In SkipNothing mode fn never sees Nothing.
// The source tree is not modified.
func MapLeaves(m *Module, mode Mode, fn func(kind Kind, v Value) (Value, error)) (*Module, error) {
	leaves, d := m.Flatten(mode)
	out := make([]Value, len(leaves))
	for i, leaf := range leaves {
		v, err := fn(d.kinds[i], leaf)
		if err != nil {
			return nil, fmt.Errorf("leaf %d: %w", i, err)
		}
		out[i] = v
	}
	return Reconstruct(d, out)
}
