package module

import "fmt"

// Update returns a new tree combining m and other leaf by leaf: other's leaf
// wins unless it is Nothing, in which case m's leaf is kept. Both trees must
// be structurally compatible (see Compatible); otherwise a
// *StructureMismatchError is returned and neither tree is touched. The result
// has m's shape, Plain values and flags.
func (m *Module) Update(other *Module, opts ...Option) (*Module, error) {
	o := newOptions(opts)
	merged, d, err := mergeLeaves(m, other)
	o.mergeDone(m, false, len(merged), err)
	if err != nil {
		return nil, err
	}
	return Reconstruct(d, merged)
}

// UpdateInPlace is Update writing the merged leaves into m itself. Nested
// submodules are updated in place, so references to them observe the merge.
// Compatibility is checked before anything is written. A tree that holds the
// same submodule at two positions is rejected with ErrSharedModule; use
// Update, which unties it. It returns m.
func (m *Module) UpdateInPlace(other *Module, opts ...Option) (*Module, error) {
	o := newOptions(opts)
	merged, _, err := mergeLeaves(m, other)
	if err == nil {
		err = checkUntied(m)
	}
	o.mergeDone(m, true, len(merged), err)
	if err != nil {
		return nil, err
	}

	next := 0
	_, err = visitor{
		mode: visitInPlace,
		leaf: func(Path, Kind, Value) (Value, error) {
			v := merged[next]
			next++
			return v, nil
		},
	}.module(nil, m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func mergeLeaves(a, b *Module) ([]Value, *Descriptor, error) {
	la, da := a.Flatten(KeepNothing)
	lb, db := b.Flatten(KeepNothing)
	if err := Compatible(da, db); err != nil {
		return nil, nil, err
	}
	out := make([]Value, len(la))
	for i := range la {
		if IsNothing(lb[i]) {
			out[i] = la[i]
		} else {
			out[i] = lb[i]
		}
	}
	return out, da, nil
}

// checkUntied fails when a module instance is reachable through more than one
// position of m.
func checkUntied(m *Module) error {
	seen := make(map[*Module]string)
	_, err := visitor{
		mode: visitRead,
		enter: func(p Path, _ Kind, v Value) error {
			sub, ok := v.(*Module)
			if !ok {
				return nil
			}
			if first, dup := seen[sub]; dup {
				return fmt.Errorf("%w: %s is also at %s", ErrSharedModule, p, first)
			}
			seen[sub] = p.String()
			return nil
		},
	}.module(nil, m)
	return err
}

func (o *options) mergeDone(m *Module, inPlace bool, leaves int, err error) {
	if err != nil {
		o.logger.Debug("Merge rejected.", "type", m.typ.name, "in_place", inPlace, "err", err)
	} else {
		o.logger.Debug("Merged trees.", "type", m.typ.name, "in_place", inPlace, "leaves", leaves)
	}
	if o.hooks.OnMerge != nil {
		o.hooks.OnMerge(&MergeEvent{Type: m.typ.name, InPlace: inPlace, Leaves: leaves, Err: err})
	}
}
