package entity

// Data is the snapshot of field values handed to validators.
type Data map[string]any

// Validator inspects the current data of an entity and reports a problem with
// field, or returns nil. label is the kind name suffixed with "Entity".
type Validator func(data Data, field, label string) error

// Rule describes how a single field is validated and defaulted.
// It is either Direct (validator only) or Described (validator plus default).
type Rule interface {
	validator() Validator
	defaultValue() any
}

type direct struct {
	fn Validator
}

func (r direct) validator() Validator { return r.fn }
func (r direct) defaultValue() any    { return nil }

type described struct {
	fn  Validator
	def any
}

func (r described) validator() Validator { return r.fn }
func (r described) defaultValue() any    { return r.def }

// Direct wraps a bare validator. The field has no default value.
func Direct(fn Validator) Rule {
	return direct{fn: fn}
}

// Described wraps a validator together with the value used when no truthy
// value is supplied. A nil fn declares a field that always validates.
func Described(fn Validator, defaultValue any) Rule {
	return described{fn: fn, def: defaultValue}
}

// Pass is a validator that accepts every value.
func Pass(Data, string, string) error { return nil }
