package inspect

import (
	"fmt"
	"reflect"

	"github.com/aretw0/arbor/pkg/module"
)

type shaped interface {
	Shape() []int
	DType() string
}

type sized interface {
	Size() int
}

// Summary describes a leaf without printing its contents: dtype and shape
// for arrays, element type and length for slices, the value itself for
// scalars, and a marker for Nothing and Deferred.
func Summary(v module.Value) string {
	switch x := v.(type) {
	case module.Nothing:
		return "Nothing"
	case *module.Deferred:
		return "Deferred"
	case module.Leaf:
		return payloadSummary(x.V)
	default:
		return fmt.Sprintf("%T", v)
	}
}

func payloadSummary(p any) string {
	if s, ok := p.(shaped); ok {
		return fmt.Sprintf("%s%v", s.DType(), s.Shape())
	}
	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("%s[%d]", rv.Type().Elem(), rv.Len())
	case reflect.Invalid:
		return "nil"
	default:
		return fmt.Sprintf("%T(%v)", p, p)
	}
}

// Size counts the elements held by a leaf. Nothing and Deferred hold none.
func Size(v module.Value) int {
	l, ok := v.(module.Leaf)
	if !ok {
		return 0
	}
	if s, ok := l.V.(sized); ok {
		return s.Size()
	}
	rv := reflect.ValueOf(l.V)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len()
	case reflect.Invalid:
		return 0
	default:
		return 1
	}
}
