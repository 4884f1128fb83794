package module

import (
	"io"
	"log/slog"

	"github.com/aretw0/arbor/pkg/prng"
)

// SetupEvent describes one setup hook invocation.
type SetupEvent struct {
	Path string
	Type string
	Key  prng.Key
}

// ResolveEvent describes one resolved Deferred value.
type ResolveEvent struct {
	Path string
	Type string
	Kind Kind
}

// MergeEvent describes one Update call.
type MergeEvent struct {
	Type    string
	InPlace bool
	Leaves  int
	Err     error
}

// Hooks are optional observers of tree operations.
type Hooks struct {
	OnSetup   func(*SetupEvent)
	OnResolve func(*ResolveEvent)
	OnMerge   func(*MergeEvent)
}

// Option configures Init and Update calls.
type Option func(*options)

type options struct {
	logger *slog.Logger
	hooks  Hooks
}

// WithLogger sets the structured logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers observers. Later calls replace earlier ones.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
