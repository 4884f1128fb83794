package module

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/prng"
)

// Init returns an initialized copy of m: setup hooks have run and every
// Deferred value has been replaced by its result. If m is already
// initialized, m itself is returned and nothing runs. m is never modified.
func (m *Module) Init(key prng.Key, opts ...Option) (*Module, error) {
	if m.initialized {
		return m, nil
	}
	out := m.Clone()
	if err := out.initTree(nil, key, newOptions(opts)); err != nil {
		return nil, err
	}
	return out, nil
}

// InitInPlace initializes m itself and returns it. Calling it on an
// initialized module is a no-op. A tree holding the same submodule at two
// positions is rejected with ErrSharedModule; Init unties it instead.
//
// When a hook or initializer fails, the error is returned and the failing
// module stays uninitialized, so a later call runs again. Its Deferred fields
// are committed together: none of them is replaced unless all resolve. Its
// setup hook has already run and runs again on retry. Submodules that
// completed keep their initialized flag and are skipped.
func (m *Module) InitInPlace(key prng.Key, opts ...Option) (*Module, error) {
	if m.initialized {
		return m, nil
	}
	if err := checkUntied(m); err != nil {
		return nil, err
	}
	if err := m.initTree(nil, key, newOptions(opts)); err != nil {
		return nil, err
	}
	return m, nil
}

// initTree splits key into one child for the instance itself and one per
// ModuleRef field. The instance key is split again into the setup hook key
// and the root of the per-Deferred keys (folded by flatten position).
// Modules inside a container field receive the field key folded by their
// position.
func (m *Module) initTree(p Path, key prng.Key, o *options) error {
	if m.initialized {
		return nil
	}
	keys := key.Split(1 + len(m.typ.subs))
	own := keys[0].Split(2)

	if m.typ.setup != nil {
		if err := m.typ.setup(m, own[0]); err != nil {
			return fmt.Errorf("%s: setup %s: %w", p, m.typ.name, err)
		}
		o.logger.Debug("Ran setup hook.", "path", p.String(), "type", m.typ.name)
		if o.hooks.OnSetup != nil {
			o.hooks.OnSetup(&SetupEvent{Path: p.String(), Type: m.typ.name, Key: own[0]})
		}
	}

	if err := m.resolve(p, own[1], o); err != nil {
		return err
	}

	for j, i := range m.typ.subs {
		fieldKey := keys[1+j]
		slot := m.slots[i]
		_, direct := slot.(*Module)
		n := 0
		_, err := visitor{
			mode: visitRead,
			sub: func(sp Path, sub *Module) (*Module, error) {
				k := fieldKey
				if !direct {
					k = fieldKey.Fold(uint64(n))
				}
				n++
				return sub, sub.initTree(sp, k, o)
			},
		}.value(p.Field(m.typ.schema[i].Name), ModuleRef, slot)
		if err != nil {
			return err
		}
	}

	m.initialized = true
	return nil
}

func (m *Module) resolve(p Path, key prng.Key, o *options) error {
	n := 0
	resolver := visitor{
		mode: visitCopy,
		leaf: func(lp Path, kind Kind, v Value) (Value, error) {
			d, ok := v.(*Deferred)
			if !ok {
				return v, nil
			}
			out, err := d.Resolve(key.Fold(uint64(n)))
			n++
			if err != nil {
				return nil, fmt.Errorf("%s: resolve: %w", lp, err)
			}
			if o.hooks.OnResolve != nil {
				o.hooks.OnResolve(&ResolveEvent{Path: lp.String(), Type: m.typ.name, Kind: kind})
			}
			return out, nil
		},
	}

	slots := make([]Value, len(m.slots))
	copy(slots, m.slots)
	for i, f := range m.typ.schema {
		if !f.Kind.IsLeaf() {
			continue
		}
		v, err := resolver.value(p.Field(f.Name), f.Kind, m.slots[i])
		if err != nil {
			return err
		}
		slots[i] = v
	}
	copy(m.slots, slots)
	if n > 0 {
		o.logger.Debug("Resolved deferred values.", "path", p.String(), "type", m.typ.name, "count", n)
	}
	return nil
}
