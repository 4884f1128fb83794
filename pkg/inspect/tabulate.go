package inspect

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/module"
)

// Totals counts the Parameter and State leaves under a tree position.
type Totals struct {
	Params    int
	ParamSize int
	States    int
	StateSize int
	Deferred  int
}

func (t *Totals) add(kind module.Kind, v module.Value) {
	if _, ok := v.(*module.Deferred); ok {
		t.Deferred++
	}
	switch kind {
	case module.Parameter:
		t.Params++
		t.ParamSize += Size(v)
	case module.State:
		t.States++
		t.StateSize += Size(v)
	}
}

func (t *Totals) fold(o Totals) {
	t.Params += o.Params
	t.ParamSize += o.ParamSize
	t.States += o.States
	t.StateSize += o.StateSize
	t.Deferred += o.Deferred
}

// Row describes one module, or one container of modules.
//
// The embedded Totals hold the leaves a module owns directly, excluding those
// of its submodules; they are zero for containers. Subtree folds in every
// nested module and container.
type Row struct {
	Path string
	Type string
	Totals
	Subtree     Totals
	Initialized bool
}

// Rows collects one Row per module and per ModuleRef container, in
// traversal order. Nothing leaves are not counted; Deferred leaves are
// counted but hold no elements yet.
func Rows(m *module.Module) []Row {
	c := &rowCollector{}
	_ = module.Walk(m, c)
	return c.rows
}

type rowCollector struct {
	rows  []Row
	stack []int
}

func (c *rowCollector) Enter(p module.Path, kind module.Kind, v module.Value) error {
	row := Row{Path: p.String()}
	switch x := v.(type) {
	case *module.Module:
		row.Type = x.Type().Name()
		row.Initialized = x.Initialized()
	case module.Seq:
		if kind != module.ModuleRef {
			return nil
		}
		row.Type = fmt.Sprintf("seq(%d)", len(x))
	case module.Map:
		if kind != module.ModuleRef {
			return nil
		}
		row.Type = fmt.Sprintf("map(%d)", len(x))
	default:
		return nil
	}
	c.stack = append(c.stack, len(c.rows))
	c.rows = append(c.rows, row)
	return nil
}

func (c *rowCollector) Leave(_ module.Path, kind module.Kind, v module.Value) error {
	switch v.(type) {
	case module.Seq, module.Map:
		if kind != module.ModuleRef {
			return nil
		}
	case *module.Module:
	default:
		return nil
	}
	done := c.rows[c.stack[len(c.stack)-1]].Subtree
	c.stack = c.stack[:len(c.stack)-1]
	if len(c.stack) > 0 {
		c.rows[c.stack[len(c.stack)-1]].Subtree.fold(done)
	}
	return nil
}

func (c *rowCollector) Leaf(_ module.Path, kind module.Kind, v module.Value) error {
	if module.IsNothing(v) {
		return nil
	}
	row := &c.rows[c.stack[len(c.stack)-1]]
	row.Totals.add(kind, v)
	row.Subtree.add(kind, v)
	return nil
}

func (c *rowCollector) Plain(module.Path, any) error { return nil }

// Tabulate renders Rows as a markdown table: own and subtree counts per row,
// followed by a totals row.
func Tabulate(m *module.Module) string {
	rows := Rows(m)
	var sb strings.Builder
	sb.WriteString("| path | type | params | param size | states | state size " +
		"| subtree params | subtree param size | subtree states | subtree state size |\n")
	sb.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|---:|\n")

	for _, r := range rows {
		fmt.Fprintf(&sb, "| `%s` | %s | %d | %s | %d | %s | %d | %s | %d | %s |\n",
			r.Path, r.Type, r.Params, count(r.ParamSize), r.States, count(r.StateSize),
			r.Subtree.Params, count(r.Subtree.ParamSize), r.Subtree.States, count(r.Subtree.StateSize))
	}
	total := rows[0].Subtree
	fmt.Fprintf(&sb, "| **total** | | **%d** | **%s** | **%d** | **%s** | **%d** | **%s** | **%d** | **%s** |\n",
		total.Params, count(total.ParamSize), total.States, count(total.StateSize),
		total.Params, count(total.ParamSize), total.States, count(total.StateSize))

	if total.Deferred > 0 {
		fmt.Fprintf(&sb, "\n%d deferred value(s) not yet initialized.\n", total.Deferred)
	}
	return sb.String()
}

// count formats n with thousands separators.
func count(n int) string {
	s := fmt.Sprint(n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
