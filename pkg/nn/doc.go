/*
Package nn provides a small set of reference layers built on package module:
a dense float64 Array leaf type, Linear, MLP and Sequential.

Layers draw their weights lazily. Constructors store Deferred initializers
and the arrays only exist once the tree is initialized:

	mlp, _ := nn.NewMLP(nn.MLPConfig{Din: 2, Dmid: 3, Dout: 5})
	mlp, _ = mlp.Init(prng.NewKey(42))

Register installs factories for every layer so blueprints can refer to them
by name ("linear", "mlp", "sequential").
*/
package nn
