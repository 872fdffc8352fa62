package entity

import (
	"errors"
	"maps"
	"slices"
)

// ErrInvalidSchema is returned when a schema declaration cannot be normalized.
var ErrInvalidSchema = errors.New("invalid schema")

// ErrUnknownField is returned when writing a field the schema does not declare.
var ErrUnknownField = errors.New("unknown field")

// Message is a plain validation failure. Its message is the string itself.
type Message string

func (m Message) Error() string { return string(m) }

// StructuredError is a validation failure that also carries a machine-readable kind.
type StructuredError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *StructuredError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Kind == "":
		return e.Message
	case e.Message == "":
		return e.Kind
	}
	return e.Kind + ": " + e.Message
}

// MessageOf extracts the user-facing message of a validator result.
// Structured errors yield their Message, anything else (or a structured
// error without a message) its Error text.
func MessageOf(err error) string {
	var structured *StructuredError
	if errors.As(err, &structured) && structured != nil && structured.Message != "" {
		return structured.Message
	}
	return err.Error()
}

// failed reports whether a validator result is a failure. A typed nil
// *StructuredError counts as success.
func failed(err error) bool {
	if err == nil {
		return false
	}
	var structured *StructuredError
	if errors.As(err, &structured) && structured == nil {
		return false
	}
	return true
}

// FieldErrors lists the messages collected for one field during a validation pass.
type FieldErrors struct {
	Errors []string `json:"errors"`
}

// Errors maps a field name to its collected messages. Fields that validated
// cleanly are absent.
type Errors map[string]*FieldErrors

// Empty reports whether no field has errors.
func (e Errors) Empty() bool { return len(e) == 0 }

// Fields returns the names of the failing fields, sorted.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

// Clone returns a deep copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = &FieldErrors{Errors: slices.Clone(v.Errors)}
	}
	return out
}

func (e Errors) add(field, message string) {
	fe, ok := e[field]
	if !ok {
		fe = &FieldErrors{Errors: []string{}}
		e[field] = fe
	}
	fe.Errors = append(fe.Errors, message)
}
