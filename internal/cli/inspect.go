package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/inspect"
	"github.com/aretw0/arbor/pkg/module"
	"github.com/aretw0/arbor/pkg/prng"
)

// InspectOptions configures RunInspect.
type InspectOptions struct {
	Path     string
	LogLevel string
	Init     bool
	// Seed overrides the blueprint seed when set.
	Seed   *int64
	Filter string
	Eval   bool
	Format string
	Plain  bool
	Banner bool
}

// RunInspect loads a blueprint, optionally initializes, filters and
// switches the tree to eval mode, and prints it.
func RunInspect(out io.Writer, opts InspectOptions) error {
	eng, err := newEngine(opts.LogLevel)
	if err != nil {
		return err
	}
	model, err := eng.Load(opts.Path)
	if err != nil {
		return err
	}

	tree := model.Tree
	if opts.Init {
		key := model.Key()
		if opts.Seed != nil {
			key = prng.NewKey(*opts.Seed)
		}
		if tree, err = eng.Init(tree, key); err != nil {
			return err
		}
	}
	if opts.Filter != "" {
		kinds, err := module.ParseKinds(opts.Filter)
		if err != nil {
			return err
		}
		tree = tree.Filter(kinds...)
	}
	if opts.Eval {
		tree = tree.Eval()
	}

	if opts.Banner && isTerminal(out) && !opts.Plain {
		tui.PrintBanner(out)
	}

	switch arbor.Format(opts.Format) {
	case arbor.FormatTable:
		title := fmt.Sprintf("## %s\n\n", model.Blueprint.Name)
		return printMarkdown(out, title+eng.Report(tree, arbor.FormatTable), opts.Plain)
	case arbor.FormatGraph:
		_, err = io.WriteString(out, graph.GenerateMermaid(tree, nil))
		return err
	case arbor.FormatRepr, "":
		_, err = io.WriteString(out, eng.Report(tree, arbor.FormatRepr, inspect.WithProfile(colorProfile(out, opts.Plain))))
		return err
	default:
		return fmt.Errorf("unknown format %q (want repr, table or graph)", opts.Format)
	}
}
