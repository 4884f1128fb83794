package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/nn"
	"github.com/aretw0/arbor/pkg/prng"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func array(t *testing.T, v module.Value) *nn.Array {
	t.Helper()
	a, ok := module.Payload(v).(*nn.Array)
	require.True(t, ok, "expected *nn.Array leaf, got %v", v)
	return a
}

func TestArray(t *testing.T) {
	z := nn.Zeros(2, 3)
	assert.Equal(t, []int{2, 3}, z.Shape())
	assert.Equal(t, 6, z.Size())
	assert.Equal(t, "float64", z.DType())
	assert.Equal(t, "float64[2 3]", z.String())

	a, err := nn.NewArray([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6, 8}, a.Map(func(x float64) float64 { return 2 * x }).Data())

	_, err = nn.NewArray([]float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, nn.ErrShape)

	shape := z.Shape()
	shape[0] = 99
	assert.Equal(t, []int{2, 3}, z.Shape())
}

func TestUniform(t *testing.T) {
	u := nn.Uniform(rand.New(rand.NewPCG(1, 2)), -0.5, 0.5, 100)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 0.5)
	}
}

func TestLinear(t *testing.T) {
	lin, err := nn.NewLinear(nn.LinearConfig{Din: 4, Dout: 2})
	require.NoError(t, err)
	assert.IsType(t, &module.Deferred{}, lin.Get("w"))
	assert.Equal(t, module.Leaf{V: 1}, lin.Get("n"))

	lin, err = lin.Init(prng.NewKey(42))
	require.NoError(t, err)

	w := array(t, lin.Get("w"))
	b := array(t, lin.Get("b"))
	assert.Equal(t, []int{4, 2}, w.Shape())
	assert.Equal(t, []int{2}, b.Shape())
	assert.Equal(t, "linear_4x2", lin.Plain("name"))
	for _, v := range w.Data() {
		assert.Less(t, v, 0.5)
		assert.GreaterOrEqual(t, v, -0.5)
	}

	_, err = nn.NewLinear(nn.LinearConfig{Din: 0, Dout: 2})
	assert.ErrorIs(t, err, nn.ErrInvalidConfig)
}

func TestMLP(t *testing.T) {
	mlp, err := nn.NewMLP(nn.MLPConfig{Din: 2, Dmid: 3, Dout: 5})
	require.NoError(t, err)
	mlp, err = mlp.Init(prng.NewKey(42))
	require.NoError(t, err)

	leaves, desc := mlp.Flatten(module.SkipNothing)
	assert.Len(t, leaves, 6)
	assert.Equal(t, []module.Kind{
		module.Parameter, module.Parameter, module.State,
		module.Parameter, module.Parameter, module.State,
	}, desc.Kinds())

	params := mlp.Filter(module.Parameter)
	assert.Len(t, params.Leaves(module.SkipNothing), 4)
	assert.Len(t, params.Leaves(module.KeepNothing), 6)

	assert.Equal(t, "linear1", mlp.Sub("linear1").Plain("name"))
	assert.Equal(t, []int{3, 5}, array(t, mlp.Sub("linear2").Get("w")).Shape())

	_, err = nn.NewMLP(nn.MLPConfig{Din: 2, Dout: 5})
	assert.ErrorIs(t, err, nn.ErrInvalidConfig)
}

func TestMLP_Deterministic(t *testing.T) {
	build := func(seed int64) *module.Module {
		m, err := nn.NewMLP(nn.MLPConfig{Din: 2, Dmid: 3, Dout: 5})
		require.NoError(t, err)
		m, err = m.Init(prng.NewKey(seed))
		require.NoError(t, err)
		return m
	}
	a, b, c := build(1), build(1), build(2)
	wa := array(t, a.Sub("linear1").Get("w")).Data()
	assert.Equal(t, wa, array(t, b.Sub("linear1").Get("w")).Data())
	assert.NotEqual(t, wa, array(t, c.Sub("linear1").Get("w")).Data())
}

func TestSequential(t *testing.T) {
	l1, err := nn.NewLinear(nn.LinearConfig{Din: 2, Dout: 3})
	require.NoError(t, err)
	l2, err := nn.NewLinear(nn.LinearConfig{Din: 3, Dout: 1})
	require.NoError(t, err)

	seq, err := nn.NewSequential("net", l1, l2)
	require.NoError(t, err)
	assert.Len(t, nn.Layers(seq), 2)

	seq, err = seq.Init(prng.NewKey(0))
	require.NoError(t, err)
	layers := nn.Layers(seq)
	assert.Equal(t, "linear_2x3", layers[0].Plain("name"))
	assert.Equal(t, "linear_3x1", layers[1].Plain("name"))
	assert.NotEqual(t,
		array(t, layers[0].Get("b")).Shape(),
		array(t, layers[1].Get("b")).Shape())
}

func TestRegister(t *testing.T) {
	reg := registry.New()
	require.NoError(t, nn.Register(reg))
	assert.Equal(t, []string{"linear", "mlp", "sequential"}, reg.Types())

	_, ok := reg.Type("MLP")
	assert.True(t, ok)

	lin, err := reg.Build("linear", map[string]any{"din": 2, "dout": 3, "name": "head"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "head", lin.Plain("name"))

	seq, err := reg.Build("sequential", map[string]any{"name": "net"}, []*module.Module{lin})
	require.NoError(t, err)
	assert.Len(t, nn.Layers(seq), 1)

	_, err = reg.Build("linear", map[string]any{"din": 2, "dout": 3}, []*module.Module{lin})
	assert.Error(t, err)

	_, err = reg.Build("mlp", map[string]any{"din": 2, "dmid": 2, "dout": 2, "width": 9}, nil)
	assert.Error(t, err)

	// registering twice is harmless
	require.NoError(t, nn.Register(reg))
}
