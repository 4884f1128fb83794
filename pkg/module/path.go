package module

import (
	"strconv"
	"strings"
)

// Path locates a value inside a tree. Each element is either a field name,
// a sequence index ("[0]") or a mapping key ("[\"k\"]").
type Path []string

// Field appends a field name.
func (p Path) Field(name string) Path {
	return append(p[:len(p):len(p)], name)
}

// Index appends a sequence index.
func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], "["+strconv.Itoa(i)+"]")
}

// Key appends a mapping key.
func (p Path) Key(k string) Path {
	return append(p[:len(p):len(p)], "["+strconv.Quote(k)+"]")
}

// Last returns the final element, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	var sb strings.Builder
	for i, el := range p {
		if i > 0 && !strings.HasPrefix(el, "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(el)
	}
	return sb.String()
}
