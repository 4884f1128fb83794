package module

import (
	"fmt"
	"sort"

	"github.com/aretw0/arbor/pkg/prng"
)

// Value is the closed set of things a non-Plain field slot can hold:
// Leaf, Nothing, *Deferred, *Module, Seq and Map.
type Value interface {
	isValue()
}

// Leaf is a present value at a leaf position. V is opaque to this package.
type Leaf struct {
	V any
}

// Nothing marks an absent value. It is equal only to itself.
type Nothing struct{}

// Seq is an ordered container of values.
type Seq []Value

// Map is a keyed container of values. Traversal visits keys in sorted order.
type Map map[string]Value

func (Leaf) isValue()      {}
func (Nothing) isValue()   {}
func (*Deferred) isValue() {}
func (*Module) isValue()   {}
func (Seq) isValue()       {}
func (Map) isValue()       {}

// IsNothing reports whether v is the absent marker.
func IsNothing(v Value) bool {
	_, ok := v.(Nothing)
	return ok
}

// IsLeafLike reports whether v occupies a single leaf slot.
func IsLeafLike(v Value) bool {
	switch v.(type) {
	case Leaf, Nothing, *Deferred:
		return true
	}
	return false
}

// Wrap turns an arbitrary Go value into a Value. Values pass through unchanged,
// nil becomes Nothing and anything else becomes a Leaf.
func Wrap(x any) Value {
	switch v := x.(type) {
	case nil:
		return Nothing{}
	case Value:
		return v
	default:
		return Leaf{V: x}
	}
}

// SeqOf builds a Seq, wrapping each element.
func SeqOf(xs ...any) Seq {
	s := make(Seq, len(xs))
	for i, x := range xs {
		s[i] = Wrap(x)
	}
	return s
}

// MapOf builds a Map, wrapping each element.
func MapOf(m map[string]any) Map {
	out := make(Map, len(m))
	for k, x := range m {
		out[k] = Wrap(x)
	}
	return out
}

// copyContainers copies the Seq and Map levels of v. Modules and leaves are
// kept by reference.
func copyContainers(v Value) Value {
	switch x := v.(type) {
	case Seq:
		out := make(Seq, len(x))
		for i, e := range x {
			out[i] = copyContainers(e)
		}
		return out
	case Map:
		out := make(Map, len(x))
		for k, e := range x {
			out[k] = copyContainers(e)
		}
		return out
	default:
		return v
	}
}

// Payload returns the data held by a Leaf, or nil for any other value.
func Payload(v Value) any {
	if l, ok := v.(Leaf); ok {
		return l.V
	}
	return nil
}

// Initializer computes a leaf value from a key.
type Initializer func(key prng.Key) (any, error)

// Deferred is a placeholder that Init replaces with the result of its
// initializer.
type Deferred struct {
	fn Initializer
}

// Defer wraps fn as a deferred leaf.
func Defer(fn Initializer) *Deferred {
	return &Deferred{fn: fn}
}

// Resolve runs the initializer. The result must be leaf-like.
func (d *Deferred) Resolve(key prng.Key) (Value, error) {
	if d == nil || d.fn == nil {
		return nil, fmt.Errorf("%w: deferred value has no initializer", ErrInvalidLeaf)
	}
	out, err := d.fn(key)
	if err != nil {
		return nil, err
	}
	v := Wrap(out)
	if _, again := v.(*Deferred); again || !IsLeafLike(v) {
		return nil, fmt.Errorf("%w: initializer returned %T", ErrInvalidLeaf, out)
	}
	return v, nil
}

func (d *Deferred) String() string { return "Deferred" }

func (Nothing) String() string { return "Nothing" }

func sortedKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
