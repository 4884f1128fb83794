package observability

import "github.com/aretw0/arbor/pkg/module"

// Combine returns Hooks that call every non-nil callback of hs in order.
func Combine(hs ...module.Hooks) module.Hooks {
	var out module.Hooks
	for _, h := range hs {
		out.OnSetup = chain(out.OnSetup, h.OnSetup)
		out.OnResolve = chain(out.OnResolve, h.OnResolve)
		out.OnMerge = chain(out.OnMerge, h.OnMerge)
	}
	return out
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
