package module_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/stretchr/testify/assert"
)

type walkFuncs struct {
	enter func(module.Path, module.Kind, module.Value) error
	leave func(module.Path, module.Kind, module.Value) error
	leaf  func(module.Path, module.Kind, module.Value) error
	plain func(module.Path, any) error
}

func (w walkFuncs) Enter(p module.Path, k module.Kind, v module.Value) error {
	if w.enter == nil {
		return nil
	}
	return w.enter(p, k, v)
}

func (w walkFuncs) Leave(p module.Path, k module.Kind, v module.Value) error {
	if w.leave == nil {
		return nil
	}
	return w.leave(p, k, v)
}

func (w walkFuncs) Leaf(p module.Path, k module.Kind, v module.Value) error {
	if w.leaf == nil {
		return nil
	}
	return w.leaf(p, k, v)
}

func (w walkFuncs) Plain(p module.Path, v any) error {
	if w.plain == nil {
		return nil
	}
	return w.plain(p, v)
}

func TestWalk_Order(t *testing.T) {
	var events []string
	err := module.Walk(newSeqMLP(), walkFuncs{
		enter: func(p module.Path, _ module.Kind, v module.Value) error {
			events = append(events, fmt.Sprintf("enter %s", p))
			return nil
		},
		leave: func(p module.Path, _ module.Kind, _ module.Value) error {
			events = append(events, fmt.Sprintf("leave %s", p))
			return nil
		},
		leaf: func(p module.Path, k module.Kind, _ module.Value) error {
			events = append(events, fmt.Sprintf("%s %s", k, p))
			return nil
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"enter .",
		"enter linears",
		"enter linears[0]",
		"parameter linears[0].w",
		"parameter linears[0].b",
		"state linears[0].n",
		"leave linears[0]",
		"enter linears[1]",
		"parameter linears[1].w",
		"parameter linears[1].b",
		"state linears[1].n",
		"leave linears[1]",
		"leave linears",
		"leave .",
	}, events)
}

func TestWalk_PlainAndStop(t *testing.T) {
	var plains []string
	stop := errors.New("stop")
	err := module.Walk(newMLP(2, 3, 5), walkFuncs{
		plain: func(p module.Path, v any) error {
			plains = append(plains, fmt.Sprintf("%s=%v", p, v))
			if len(plains) == 4 {
				return stop
			}
			return nil
		},
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"linear1.din=2", "linear1.dout=3", "linear1.name=linear1", "linear2.din=3"}, plains)
}

func TestPath_String(t *testing.T) {
	var p module.Path
	assert.Equal(t, ".", p.String())
	assert.Equal(t, `a["mlps"][1].linear2`, p.Field("a").Key("mlps").Index(1).Field("linear2").String())
	assert.Equal(t, "[1]", p.Field("a").Index(1).Last())
}
