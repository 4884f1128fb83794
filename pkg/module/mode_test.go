package module_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/prng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTraining(t *testing.T, m *module.Module, want bool) {
	t.Helper()
	err := module.Walk(m, walkFuncs{enter: func(p module.Path, _ module.Kind, v module.Value) error {
		if sub, ok := v.(*module.Module); ok {
			assert.Equal(t, want, sub.Training(), "training flag at %s", p)
		}
		return nil
	}})
	require.NoError(t, err)
}

func TestTrain(t *testing.T) {
	mlp, err := newMLP(2, 3, 5).Init(prng.NewKey(42))
	require.NoError(t, err)

	assert.True(t, mlp.Training())
	assert.True(t, mlp.Sub("linear1").Training())
	assert.True(t, mlp.Sub("linear2").Training())

	evaluated := mlp.Eval()
	assert.False(t, evaluated.Training())
	assert.False(t, evaluated.Sub("linear1").Training())
	assert.False(t, evaluated.Sub("linear2").Training())
	assert.True(t, mlp.Training(), "Eval must not touch the receiver")

	trained := evaluated.Train()
	assert.True(t, trained.Training())
	assert.True(t, trained.Sub("linear1").Training())
	assert.True(t, trained.Sub("linear2").Training())
	assert.True(t, trained.Initialized())
}

func TestTrainInPlace(t *testing.T) {
	mlp, err := newMLP(2, 3, 5).Init(prng.NewKey(42))
	require.NoError(t, err)

	assert.Same(t, mlp, mlp.EvalInPlace())
	assert.False(t, mlp.Training())
	assert.False(t, mlp.Sub("linear1").Training())
	assert.False(t, mlp.Sub("linear2").Training())

	assert.Same(t, mlp, mlp.TrainInPlace())
	assert.True(t, mlp.Training())
	assert.True(t, mlp.Sub("linear1").Training())
	assert.True(t, mlp.Sub("linear2").Training())
}

func TestTrain_DeepNesting(t *testing.T) {
	tree := newMixed()

	evaluated := tree.Eval()
	allTraining(t, evaluated, false)
	allTraining(t, tree, true)

	allTraining(t, evaluated.Train(), true)

	tree.EvalInPlace()
	allTraining(t, tree, false)
	tree.TrainInPlace()
	allTraining(t, tree, true)
}
