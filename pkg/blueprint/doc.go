/*
Package blueprint describes a module tree in YAML or JSON and builds it
through a registry.

	name: demo
	seed: 42
	root:
	  type: sequential
	  layers:
	    - type: linear
	      args: {din: 2, dout: 3}
	    - type: mlp
	      args: {din: 3, dmid: 8, dout: 1}

Each layer names a registered factory. args are decoded by the factory and
layers are built first and handed to it in order.
*/
package blueprint
