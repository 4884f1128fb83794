/*
Package module implements typed composite trees of stateful modules.

A module type is declared once with Define, which fixes an ordered schema
mapping field names to a Kind:

  - Parameter: trainable leaves.
  - State: mutable runtime leaves.
  - Plain: static metadata, carried in the descriptor and never a leaf.
  - ModuleRef: nested modules, or sequences and mappings of modules.

Field slots hold a closed set of values: Leaf, Nothing, *Deferred, *Module,
Seq and Map. Nothing is the absent marker; it occupies exactly one leaf slot
and survives every traversal.

# Tree protocol

Flatten enumerates leaves in declaration order (mapping keys in sorted order)
and returns a Descriptor; Reconstruct rebuilds an identical tree from the
descriptor and a leaf slice of the same length. MapLeaves combines both and is
what an external array backend uses to move a whole tree.

	leaves, desc := mlp.Flatten(module.SkipNothing)
	next, err := module.Reconstruct(desc, transform(leaves))

# Algebra

Filter projects a tree onto the chosen kinds, replacing the rest with Nothing.
Update merges two structurally compatible trees, taking the right-hand leaf
unless it is Nothing. Init resolves Deferred values and runs setup hooks
exactly once per instance, threading an explicit prng.Key down the tree.

Every mutating operation comes in two forms: a pure one that returns a new
tree (Update, Init, Train, Eval) and an explicit InPlace one that mutates the
receiver and returns it.
*/
package module
