package blueprint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is returned for an unsupported blueprint format.
var ErrFormat = errors.New("unsupported blueprint format")

// LayerError is a single invalid layer.
type LayerError struct {
	Path   string
	Reason string
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("layer %s: %s", e.Path, e.Reason)
}

// AggregateError holds every problem found by Validate.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d blueprint errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
