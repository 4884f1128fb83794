package module

// Train returns a copy of m with the training flag set on m and every
// submodule.
func (m *Module) Train() *Module { return m.withTraining(true, visitCopy) }

// Eval returns a copy of m with the training flag cleared on m and every
// submodule.
func (m *Module) Eval() *Module { return m.withTraining(false, visitCopy) }

// TrainInPlace sets the training flag on m and every submodule and returns m.
func (m *Module) TrainInPlace() *Module { return m.withTraining(true, visitInPlace) }

// EvalInPlace clears the training flag on m and every submodule and returns m.
func (m *Module) EvalInPlace() *Module { return m.withTraining(false, visitInPlace) }

func (m *Module) withTraining(training bool, mode visitMode) *Module {
	out, _ := visitor{
		mode: mode,
		leave: func(_ Path, _ Kind, v Value) error {
			if sub, ok := v.(*Module); ok {
				sub.training = training
			}
			return nil
		},
	}.module(nil, m)
	return out
}
