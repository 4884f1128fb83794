package module

import "fmt"

type visitMode uint8

const (
	// visitCopy rebuilds every module and container it passes through.
	visitCopy visitMode = iota
	// visitInPlace writes results back into the visited modules and containers.
	visitInPlace
	// visitRead discards results.
	visitRead
)

// visitor is the single recursive traversal behind every tree operation. It
// dispatches on the closed set of values: leaf-like values go to leaf,
// nested modules to sub (or the default descent), and containers recurse.
type visitor struct {
	mode  visitMode
	leaf  func(p Path, kind Kind, v Value) (Value, error)
	plain func(p Path, v any) error
	sub   func(p Path, m *Module) (*Module, error)
	enter func(p Path, kind Kind, v Value) error
	leave func(p Path, kind Kind, v Value) error
}

func (vis visitor) module(p Path, m *Module) (*Module, error) {
	if vis.enter != nil {
		if err := vis.enter(p, ModuleRef, m); err != nil {
			return nil, err
		}
	}

	out := m
	if vis.mode == visitCopy {
		out = m.shallow()
	}
	for i, f := range m.typ.schema {
		fp := p.Field(f.Name)
		if f.Kind == Plain {
			if vis.plain != nil {
				if err := vis.plain(fp, m.plain[i]); err != nil {
					return nil, err
				}
			}
			continue
		}
		v, err := vis.value(fp, f.Kind, m.slots[i])
		if err != nil {
			return nil, err
		}
		if vis.mode != visitRead {
			out.slots[i] = v
		}
	}

	if vis.leave != nil {
		if err := vis.leave(p, ModuleRef, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (vis visitor) value(p Path, kind Kind, v Value) (Value, error) {
	switch x := v.(type) {
	case Leaf, Nothing, *Deferred:
		if vis.leaf == nil {
			return v, nil
		}
		return vis.leaf(p, kind, v)

	case *Module:
		visit := vis.module
		if vis.sub != nil {
			visit = vis.sub
		}
		out, err := visit(p, x)
		if err != nil {
			return nil, err
		}
		return out, nil

	case Seq:
		if vis.enter != nil {
			if err := vis.enter(p, kind, x); err != nil {
				return nil, err
			}
		}
		out := x
		if vis.mode == visitCopy {
			out = make(Seq, len(x))
		}
		for i, e := range x {
			nv, err := vis.value(p.Index(i), kind, e)
			if err != nil {
				return nil, err
			}
			if vis.mode != visitRead {
				out[i] = nv
			}
		}
		if vis.leave != nil {
			if err := vis.leave(p, kind, out); err != nil {
				return nil, err
			}
		}
		return out, nil

	case Map:
		if vis.enter != nil {
			if err := vis.enter(p, kind, x); err != nil {
				return nil, err
			}
		}
		out := x
		if vis.mode == visitCopy {
			out = make(Map, len(x))
		}
		for _, k := range sortedKeys(x) {
			nv, err := vis.value(p.Key(k), kind, x[k])
			if err != nil {
				return nil, err
			}
			if vis.mode != visitRead {
				out[k] = nv
			}
		}
		if vis.leave != nil {
			if err := vis.leave(p, kind, out); err != nil {
				return nil, err
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%s: %w: %T", p, ErrInvalidLeaf, v)
	}
}

// Visitor observes a tree in traversal order.
//
// Enter and Leave bracket composite values (*Module, Seq, Map); Leaf receives
// Leaf, Nothing and *Deferred values; Plain receives static fields. The root
// module is entered with an empty path and kind ModuleRef. Returning an error
// stops the walk.
type Visitor interface {
	Enter(p Path, kind Kind, v Value) error
	Leave(p Path, kind Kind, v Value) error
	Leaf(p Path, kind Kind, v Value) error
	Plain(p Path, v any) error
}

// Walk traverses m in the same order as Flatten without modifying it.
func Walk(m *Module, w Visitor) error {
	_, err := visitor{
		mode:  visitRead,
		enter: w.Enter,
		leave: w.Leave,
		plain: w.Plain,
		leaf: func(p Path, kind Kind, v Value) (Value, error) {
			return v, w.Leaf(p, kind, v)
		},
	}.module(nil, m)
	return err
}
