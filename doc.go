/*
Package arbor is a typed composite-tree module system: stateful containers
("modules") whose fields are classified by role, treated as a single
structured value that array code can flatten, transform leaf by leaf and
rebuild.

# Concept

A module type declares an ordered schema. Every field has a kind:

  - Parameter: trainable leaves.
  - State: non-trainable leaves (counters, running statistics).
  - Plain: static metadata, never a leaf.
  - ModuleRef: nested modules, possibly inside sequences and mappings.

Unset leaf slots hold the Nothing sentinel, which survives every
flatten/reconstruct round-trip. Filter replaces leaves of other kinds with
Nothing and Update merges such partial trees back together. Init resolves
Deferred values and runs per-type setup hooks exactly once, threading a
splittable key through the tree so results are reproducible.

# Key Features

  - Deterministic leaf order: schema order, sorted mapping keys.
  - Pure and in-place variants of every mutating operation.
  - Blueprints: YAML or JSON descriptions of module trees built through a
    registry of layer factories.
  - Observability: slog debug records and Prometheus counters via hooks.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/module"
	)

	func main() {
		eng, err := arbor.New()
		if err != nil {
			log.Fatal(err)
		}

		model, err := eng.Load("model.yaml")
		if err != nil {
			log.Fatal(err)
		}

		tree, err := eng.Init(model.Tree, model.Key())
		if err != nil {
			log.Fatal(err)
		}

		params := tree.Filter(module.Parameter)
		fmt.Println(eng.Report(params, arbor.FormatTable))
	}
*/
package arbor
