package module

import (
	"fmt"
	"strings"
)

// Kind is the role of a field within a module.
type Kind uint8

const (
	Parameter Kind = iota + 1
	State
	Plain
	ModuleRef
)

func (k Kind) String() string {
	switch k {
	case Parameter:
		return "parameter"
	case State:
		return "state"
	case Plain:
		return "plain"
	case ModuleRef:
		return "module"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsLeaf reports whether fields of this kind hold leaves.
func (k Kind) IsLeaf() bool {
	return k == Parameter || k == State
}

func (k Kind) valid() bool {
	return k >= Parameter && k <= ModuleRef
}

// ParseKind converts a kind name ("parameter", "state", "plain", "module").
// Short forms "param" and "params" are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parameter", "parameters", "param", "params":
		return Parameter, nil
	case "state", "states":
		return State, nil
	case "plain":
		return Plain, nil
	case "module", "modules", "moduleref":
		return ModuleRef, nil
	default:
		return 0, fmt.Errorf("unknown kind: %q", s)
	}
}

// ParseKinds parses a comma separated kind list.
func ParseKinds(s string) ([]Kind, error) {
	var kinds []Kind
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

type kindSet uint8

func newKindSet(kinds []Kind) kindSet {
	var s kindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s kindSet) has(k Kind) bool {
	return s&(1<<k) != 0
}
