/*
Package prng provides splittable, deterministic random keys.

A Key never carries mutable state: deriving children with Split or Fold leaves
the parent untouched, so the same key always produces the same subtree of keys.
This is what lets module initialization thread seeds explicitly down a tree
instead of drawing from an ambient source.

	root := prng.NewKey(42)
	keys := root.Split(3)
	rng := keys[0].Rand()
*/
package prng
