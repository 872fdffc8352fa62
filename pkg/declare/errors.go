package declare

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDeclaration is returned (wrapped) for every malformed declaration.
var ErrInvalidDeclaration = errors.New("invalid declaration")

// FieldError represents a single declaration problem on one field.
type FieldError struct {
	Field  string // Field name, empty for document-level problems
	Reason string // Human-readable reason for failure
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// AggregateError represents multiple declaration problems.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d declaration errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// Problems returns all declaration problems if err wraps an AggregateError.
// Otherwise returns nil.
func Problems(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
