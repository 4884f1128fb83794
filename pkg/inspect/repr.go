package inspect

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/module"
	"github.com/muesli/termenv"
)

// Option configures Repr.
type Option func(*options)

type options struct {
	profile   termenv.Profile
	hidePlain bool
}

// WithProfile colours kind markers for the given terminal profile. The
// default is termenv.Ascii (no escape sequences).
func WithProfile(p termenv.Profile) Option {
	return func(o *options) {
		o.profile = p
	}
}

// HidePlain omits static fields.
func HidePlain() Option {
	return func(o *options) {
		o.hidePlain = true
	}
}

var kindColors = map[module.Kind]string{
	module.Parameter: "#818cf8",
	module.State:     "#f472b6",
}

func (o *options) paint(s, hex string) string {
	if o.profile == termenv.Ascii {
		return s
	}
	return o.profile.String(s).Foreground(o.profile.Color(hex)).String()
}

func (o *options) faint(s string) string {
	if o.profile == termenv.Ascii {
		return s
	}
	return o.profile.String(s).Faint().String()
}

// Repr renders m as an indented tree. Every leaf shows its kind and Summary;
// containers and submodules are expanded with their path element as label.
func Repr(m *module.Module, opts ...Option) string {
	o := &options{profile: termenv.Ascii}
	for _, opt := range opts {
		opt(o)
	}
	r := &reprWriter{o: o}
	// the writer never fails
	_ = module.Walk(m, r)
	return r.sb.String()
}

type reprWriter struct {
	o     *options
	sb    strings.Builder
	depth int
}

func (r *reprWriter) line(p module.Path, text string) {
	r.sb.WriteString(strings.Repeat("  ", r.depth))
	if label := p.Last(); label != "" {
		r.sb.WriteString(label)
		r.sb.WriteString(": ")
	}
	r.sb.WriteString(text)
	r.sb.WriteByte('\n')
}

func (r *reprWriter) Enter(p module.Path, _ module.Kind, v module.Value) error {
	switch x := v.(type) {
	case *module.Module:
		r.line(p, x.Type().Name()+" {")
	case module.Seq:
		r.line(p, "[")
	case module.Map:
		r.line(p, "{")
	}
	r.depth++
	return nil
}

func (r *reprWriter) Leave(_ module.Path, _ module.Kind, v module.Value) error {
	r.depth--
	closer := "}"
	if _, ok := v.(module.Seq); ok {
		closer = "]"
	}
	r.sb.WriteString(strings.Repeat("  ", r.depth))
	r.sb.WriteString(closer)
	r.sb.WriteByte('\n')
	return nil
}

func (r *reprWriter) Leaf(p module.Path, kind module.Kind, v module.Value) error {
	summary := Summary(v)
	if !module.IsNothing(v) {
		summary = r.o.paint(summary, kindColors[kind])
	} else {
		summary = r.o.faint(summary)
	}
	r.line(p, fmt.Sprintf("%s %s", kind, summary))
	return nil
}

func (r *reprWriter) Plain(p module.Path, v any) error {
	if r.o.hidePlain {
		return nil
	}
	r.line(p, fmt.Sprintf("%v", v))
	return nil
}
