package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/arbor/pkg/module"
)

// RunValidate builds a blueprint, initializes it with its seed and checks
// that flatten/reconstruct round-trips hold before and after Init and for
// every filter view.
func RunValidate(out io.Writer, path, logLevel string) error {
	eng, err := newEngine(logLevel)
	if err != nil {
		return err
	}
	model, err := eng.Load(path)
	if err != nil {
		return err
	}

	tree, err := eng.Init(model.Tree, model.Key())
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	views := []struct {
		name string
		tree *module.Module
	}{
		{"blueprint", model.Tree},
		{"initialized", tree},
		{"parameters", tree.Filter(module.Parameter)},
		{"state", tree.Filter(module.State)},
	}
	for _, v := range views {
		if err := eng.Check(v.tree); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}

	merged, err := eng.Update(views[2].tree, views[3].tree)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if got, want := len(merged.Leaves(module.SkipNothing)), len(tree.Leaves(module.SkipNothing)); got != want {
		return fmt.Errorf("merge: %d leaves after recombining, want %d", got, want)
	}

	fmt.Fprintf(out, "Blueprint %q is valid: %d leaves.\n", model.Blueprint.Name, len(tree.Leaves(module.SkipNothing)))
	return nil
}
