package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/inspect"
	"github.com/aretw0/arbor/pkg/module"
)

// GraphOverlay marks leaves to highlight on the diagram.
type GraphOverlay struct {
	// Kinds highlights every non-Nothing leaf of these kinds (what a Filter
	// with the same kinds would keep).
	Kinds []module.Kind
}

// GenerateMermaid produces a Mermaid flowchart of a module tree.
// It applies structural shapes:
// - Module: [Rectangle]
// - Sequence / mapping container: [/Parallelogram/]
// - Parameter leaf: [[Subroutine]]
// - State leaf: (Rounded)
// Nothing leaves are dashed. Plain fields are listed inside their module.
func GenerateMermaid(m *module.Module, overlay *GraphOverlay) string {
	g := &mermaid{overlay: overlay}
	g.sb.WriteString("graph TD\n")
	// the generator never fails
	_ = module.Walk(m, g)

	g.sb.WriteString("\n    %% Leaf Styles\n")
	g.sb.WriteString("    classDef nothing stroke-dasharray:4 4,color:#888;\n")
	for _, id := range g.nothing {
		fmt.Fprintf(&g.sb, "    class %s nothing;\n", id)
	}
	if overlay != nil {
		g.sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		g.sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
		for _, id := range g.selected {
			fmt.Fprintf(&g.sb, "    class %s selected;\n", id)
		}
	}
	return g.sb.String()
}

type mermaid struct {
	sb       strings.Builder
	overlay  *GraphOverlay
	nothing  []string
	selected []string
}

func (g *mermaid) node(p module.Path, opener, label, closer string) string {
	id := nodeID(p)
	fmt.Fprintf(&g.sb, "    %s%s\"%s\"%s\n", id, opener, escape(label), closer)
	if len(p) > 0 {
		fmt.Fprintf(&g.sb, "    %s --> %s\n", nodeID(p[:len(p)-1]), id)
	}
	return id
}

func (g *mermaid) Enter(p module.Path, _ module.Kind, v module.Value) error {
	switch x := v.(type) {
	case *module.Module:
		g.node(p, "[", name(p)+": "+x.Type().Name(), "]")
	case module.Seq:
		g.node(p, "[/", fmt.Sprintf("%s: seq(%d)", name(p), len(x)), "/]")
	case module.Map:
		g.node(p, "[/", fmt.Sprintf("%s: map(%d)", name(p), len(x)), "/]")
	}
	return nil
}

func (g *mermaid) Leave(module.Path, module.Kind, module.Value) error { return nil }

func (g *mermaid) Leaf(p module.Path, kind module.Kind, v module.Value) error {
	opener, closer := "[[", "]]"
	if kind == module.State {
		opener, closer = "(", ")"
	}
	id := g.node(p, opener, name(p)+": "+inspect.Summary(v), closer)
	if module.IsNothing(v) {
		g.nothing = append(g.nothing, id)
		return nil
	}
	if g.overlay != nil && slices.Contains(g.overlay.Kinds, kind) {
		g.selected = append(g.selected, id)
	}
	return nil
}

func (g *mermaid) Plain(p module.Path, v any) error {
	id := nodeID(p)
	fmt.Fprintf(&g.sb, "    %s>\"%s = %v\"]\n", id, escape(name(p)), v)
	fmt.Fprintf(&g.sb, "    %s -.- %s\n", nodeID(p[:len(p)-1]), id)
	return nil
}

func name(p module.Path) string {
	if len(p) == 0 {
		return "root"
	}
	return p.Last()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func nodeID(p module.Path) string {
	if len(p) == 0 {
		return "root"
	}
	return "root_" + sanitizeMermaidID(p.String())
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		"[", "_",
		"]", "",
		"\"", "",
	).Replace(id)
}
