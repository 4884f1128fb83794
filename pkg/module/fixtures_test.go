package module_test

import (
	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/prng"
)

var linearType = module.MustDefine("Linear", module.Schema{}.
	With(module.Parameter, "w", "b").
	With(module.State, "n").
	With(module.Plain, "din", "dout", "name"))

var mlpType = module.MustDefine("MLP", module.Schema{}.
	With(module.ModuleRef, "linear1", "linear2").
	With(module.Plain, "din", "dmid", "dout", "name"))

func ramp(n int, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + float64(i)
	}
	return out
}

func newLinear(din, dout int, name string) *module.Module {
	return linearType.MustNew(map[string]any{
		"w":    ramp(din*dout, 0),
		"b":    ramp(dout, 100),
		"n":    1,
		"din":  din,
		"dout": dout,
		"name": name,
	})
}

func newMLP(din, dmid, dout int) *module.Module {
	return mlpType.MustNew(map[string]any{
		"linear1": newLinear(din, dmid, "linear1"),
		"linear2": newLinear(dmid, dout, "linear2"),
		"din":     din,
		"dmid":    dmid,
		"dout":    dout,
		"name":    "mlp",
	})
}

// deferredLinear mirrors a layer whose weights are drawn at Init time.
func deferredLinear(din, dout int) *module.Module {
	return linearType.MustNew(map[string]any{
		"w": module.Defer(func(k prng.Key) (any, error) {
			r := k.Rand()
			w := make([]float64, din*dout)
			for i := range w {
				w[i] = r.Float64()
			}
			return w, nil
		}),
		"b":    module.Defer(func(prng.Key) (any, error) { return make([]float64, dout), nil }),
		"n":    1,
		"din":  din,
		"dout": dout,
		"name": "linear",
	})
}

var mixedType = module.MustDefine("MyModule", module.Schema{}.
	With(module.ModuleRef, "a").
	With(module.Parameter, "b"))

// newMixed builds a mapping-of-sequence-of-module field next to a sequence
// of parameters holding one deferred and one concrete leaf.
func newMixed() *module.Module {
	return mixedType.MustNew(map[string]any{
		"a": module.Map{"mlps": module.Seq{newMLP(2, 3, 5), newMLP(2, 3, 5)}},
		"b": module.SeqOf(
			module.Defer(func(prng.Key) (any, error) { return make([]float64, 40), nil }),
			make([]float64, 65),
		),
	})
}

func isNothing(m *module.Module, field string) bool {
	return module.IsNothing(m.Get(field))
}
