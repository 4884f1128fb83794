package module_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	mlp := newMLP(2, 3, 5)
	params := mlp.Filter(module.Parameter)
	states := mlp.Filter(module.State)

	next, err := params.Update(states)
	require.NoError(t, err)

	for _, name := range []string{"linear1", "linear2"} {
		sub := next.Sub(name)
		assert.False(t, isNothing(sub, "w"), name)
		assert.False(t, isNothing(sub, "b"), name)
		assert.False(t, isNothing(sub, "n"), name)
	}
	assert.Equal(t, mlp, next)
}

func TestUpdate_NotInPlace(t *testing.T) {
	mlp := newMLP(2, 3, 5)
	params := mlp.Filter(module.Parameter)
	states := mlp.Filter(module.State)

	_, err := params.Update(states)
	require.NoError(t, err)

	assert.False(t, isNothing(params.Sub("linear1"), "w"))
	assert.True(t, isNothing(params.Sub("linear1"), "n"))
	assert.True(t, isNothing(params.Sub("linear2"), "n"))
	assert.True(t, isNothing(states.Sub("linear1"), "w"))
}

func TestUpdateInPlace(t *testing.T) {
	mlp := newMLP(2, 3, 5)
	params := mlp.Filter(module.Parameter)
	states := mlp.Filter(module.State)
	linear1 := params.Sub("linear1")

	got, err := params.UpdateInPlace(states)
	require.NoError(t, err)
	assert.Same(t, params, got)

	for _, name := range []string{"linear1", "linear2"} {
		sub := params.Sub(name)
		assert.False(t, isNothing(sub, "w"), name)
		assert.False(t, isNothing(sub, "b"), name)
		assert.False(t, isNothing(sub, "n"), name)
	}

	// Submodules are updated through identity.
	assert.Same(t, linear1, params.Sub("linear1"))
	assert.Equal(t, 1, module.Payload(linear1.Get("n")))
	assert.Equal(t, mlp, params)
}

func TestUpdate_ComplementRestoresTree(t *testing.T) {
	for _, tree := range []*module.Module{newMLP(2, 3, 5), newMixed(), newSeqMLP(), deferredLinear(2, 2)} {
		t.Run(tree.Type().Name(), func(t *testing.T) {
			merged, err := tree.Filter(module.Parameter).Update(tree.Filter(module.State, module.Plain, module.ModuleRef))
			require.NoError(t, err)
			assert.Equal(t, tree, merged)
			for _, l := range merged.Leaves(module.KeepNothing) {
				assert.False(t, module.IsNothing(l))
			}
		})
	}
}

func TestUpdate_AllNothingIsNoop(t *testing.T) {
	tree := newMixed()
	merged, err := tree.Update(tree.Filter())
	require.NoError(t, err)
	assert.Equal(t, tree, merged)
}

func TestUpdate_OtherOverrides(t *testing.T) {
	a := newLinear(2, 2, "a")
	b := linearType.MustNew(map[string]any{"n": 7})

	got, err := a.Update(b)
	require.NoError(t, err)
	assert.Equal(t, 7, module.Payload(got.Get("n")))
	assert.Equal(t, ramp(4, 0), module.Payload(got.Get("w")))
	assert.Equal(t, "a", got.Plain("name"))
}

func TestUpdate_StructureMismatch(t *testing.T) {
	short := pairsType.MustNew(map[string]any{"x": module.Map{"k": module.SeqOf(1, 2)}})
	long := pairsType.MustNew(map[string]any{"x": module.Map{"k": module.SeqOf(1, 2, 3)}})
	shortBefore, longBefore := short.Clone(), long.Clone()

	t.Run("Copy", func(t *testing.T) {
		got, err := short.Update(long)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, module.ErrStructureMismatch)

		var sm *module.StructureMismatchError
		require.ErrorAs(t, err, &sm)
		assert.Equal(t, `x["k"]`, sm.Path)
		assert.Contains(t, sm.Reason, "sequence length 2 vs 3")
	})

	t.Run("In Place", func(t *testing.T) {
		_, err := short.UpdateInPlace(long)
		assert.ErrorIs(t, err, module.ErrStructureMismatch)
	})

	assert.Equal(t, shortBefore, short)
	assert.Equal(t, longBefore, long)
}

func TestUpdate_MismatchedTypes(t *testing.T) {
	_, err := newMLP(2, 3, 5).Update(newSeqMLP())
	assert.ErrorIs(t, err, module.ErrStructureMismatch)

	other := module.MustDefine("Linear", module.Schema{}.With(module.Parameter, "w", "b", "n"))
	_, err = newLinear(2, 2, "l").Update(other.MustNew(nil))
	assert.ErrorIs(t, err, module.ErrStructureMismatch)
}

func TestUpdate_Hooks(t *testing.T) {
	var events []*module.MergeEvent
	hooks := module.Hooks{OnMerge: func(e *module.MergeEvent) { events = append(events, e) }}

	mlp := newMLP(2, 3, 5)
	_, err := mlp.Update(mlp.Filter(module.State), module.WithHooks(hooks))
	require.NoError(t, err)
	_, err = mlp.UpdateInPlace(newSeqMLP(), module.WithHooks(hooks))
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "MLP", events[0].Type)
	assert.False(t, events[0].InPlace)
	assert.Equal(t, 6, events[0].Leaves)
	assert.NoError(t, events[0].Err)
	assert.True(t, events[1].InPlace)
	assert.ErrorIs(t, events[1].Err, module.ErrStructureMismatch)
}

func newTiedMLP() *module.Module {
	shared := newLinear(2, 2, "tied")
	return mlpType.MustNew(map[string]any{"linear1": shared, "linear2": shared, "name": "tied"})
}

func TestUpdate_SharedSubmodule(t *testing.T) {
	tied := newTiedMLP()
	other := tied.Filter(module.State)
	i := 0
	other, err := module.MapLeaves(other, module.KeepNothing, func(_ module.Kind, v module.Value) (module.Value, error) {
		if module.IsNothing(v) {
			return v, nil
		}
		i++
		return module.Leaf{V: 10 * i}, nil
	})
	require.NoError(t, err)

	merged, err := tied.Update(other)
	require.NoError(t, err)
	assert.Equal(t, 10, module.Payload(merged.Sub("linear1").Get("n")))
	assert.Equal(t, 20, module.Payload(merged.Sub("linear2").Get("n")))
	assert.NotSame(t, merged.Sub("linear1"), merged.Sub("linear2"))

	before := tied.Clone()
	_, err = tied.UpdateInPlace(other)
	assert.ErrorIs(t, err, module.ErrSharedModule)
	assert.Contains(t, err.Error(), "linear2 is also at linear1")
	assert.Equal(t, before, tied)
	assert.Same(t, tied.Sub("linear1"), tied.Sub("linear2"))
}

func TestUpdateInPlace_SharedInContainer(t *testing.T) {
	shared := newMLP(2, 3, 5)
	tree := seqMLPType.MustNew(map[string]any{"linears": module.Seq{shared, shared}})

	_, err := tree.UpdateInPlace(tree.Filter(module.State))
	assert.ErrorIs(t, err, module.ErrSharedModule)

	merged, err := tree.Update(tree.Filter(module.State))
	require.NoError(t, err)
	assert.Len(t, merged.Leaves(module.SkipNothing), 12)
}
