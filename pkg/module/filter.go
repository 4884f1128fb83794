package module

// Filter returns a copy of m in which every leaf whose kind is not one of
// kinds is replaced by Nothing. ModuleRef fields are always traversed, Plain
// fields are kept, and the tree shape is unchanged. m is not modified.
func (m *Module) Filter(kinds ...Kind) *Module {
	keep := newKindSet(kinds)
	out, _ := visitor{
		mode: visitCopy,
		leaf: func(_ Path, kind Kind, v Value) (Value, error) {
			if keep.has(kind) {
				return v, nil
			}
			return Nothing{}, nil
		},
	}.module(nil, m)
	return out
}
