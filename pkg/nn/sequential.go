package nn

import "github.com/aretw0/arbor/pkg/module"

// SequentialType chains a sequence of layers.
var SequentialType = module.MustDefine("Sequential", module.Schema{}.
	With(module.ModuleRef, "layers").
	With(module.Plain, "name"))

// NewSequential builds a Sequential holding layers in order.
func NewSequential(name string, layers ...*module.Module) (*module.Module, error) {
	seq := make(module.Seq, len(layers))
	for i, l := range layers {
		seq[i] = l
	}
	return SequentialType.New(map[string]any{
		"layers": seq,
		"name":   name,
	})
}

// Layers returns the layers of a Sequential module.
func Layers(m *module.Module) []*module.Module {
	seq, _ := m.Get("layers").(module.Seq)
	out := make([]*module.Module, 0, len(seq))
	for _, v := range seq {
		if l, ok := v.(*module.Module); ok {
			out = append(out, l)
		}
	}
	return out
}
