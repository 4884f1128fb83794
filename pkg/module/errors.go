package module

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructureMismatch is returned when two trees are not structurally compatible.
var ErrStructureMismatch = errors.New("structure mismatch")

// ErrLeafCount is returned by Reconstruct when the leaf slice does not fit the descriptor.
var ErrLeafCount = errors.New("leaf count mismatch")

// ErrInvalidLeaf is returned when a non leaf value shows up at a leaf position.
var ErrInvalidLeaf = errors.New("invalid leaf value")

// ErrSharedModule is returned by in-place operations when one module instance
// sits at more than one position of the tree.
var ErrSharedModule = errors.New("shared module instance")

// ErrUnknownField is returned when a field name is not part of the schema.
var ErrUnknownField = errors.New("unknown field")

// StructureMismatchError reports where two trees diverge.
type StructureMismatchError struct {
	Path   string
	Reason string
}

func (e *StructureMismatchError) Error() string {
	return fmt.Sprintf("structure mismatch at %s: %s", e.Path, e.Reason)
}

func (e *StructureMismatchError) Unwrap() error {
	return ErrStructureMismatch
}

// FieldError is a single schema or assignment failure.
type FieldError struct {
	Type   string
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("type %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("type %s: field %q: %s", e.Type, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// SchemaError aggregates FieldErrors found while defining a type or
// constructing an instance.
type SchemaError struct {
	Errors []error
}

func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d schema errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *SchemaError) Unwrap() []error {
	return e.Errors
}

func schemaErr(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &SchemaError{Errors: errs}
}
