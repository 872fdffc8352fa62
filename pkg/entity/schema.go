package entity

import (
	"encoding/json"
	"fmt"
)

// LabelSuffix is appended to a kind name to form the label handed to validators.
const LabelSuffix = "Entity"

// FieldDef pairs a field name with its rule. Use F to build one.
type FieldDef struct {
	Name string
	Rule Rule
}

// F declares a schema field.
func F(name string, rule Rule) FieldDef {
	return FieldDef{Name: name, Rule: rule}
}

type field struct {
	name       string
	validate   Validator
	def        any
	hasDefault bool
}

// accessor reads and writes one slot of an entity. The table is built once per
// schema and shared by every instance.
type accessor struct {
	get func(e *Entity) any
	set func(e *Entity, value any)
}

// Schema is the immutable, ordered field declaration of a kind.
type Schema struct {
	kind      string
	label     string
	fields    []field
	index     map[string]int
	accessors map[string]accessor
}

// NewSchema normalizes the field rules of kind into a Schema.
// Field order is preserved and drives validation order.
func NewSchema(kind string, defs ...FieldDef) (*Schema, error) {
	if kind == "" {
		return nil, fmt.Errorf("%w: kind is empty", ErrInvalidSchema)
	}

	s := &Schema{
		kind:      kind,
		label:     kind + LabelSuffix,
		fields:    make([]field, 0, len(defs)),
		index:     make(map[string]int, len(defs)),
		accessors: make(map[string]accessor, len(defs)),
	}

	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: %s: field name is empty", ErrInvalidSchema, kind)
		}
		if _, dup := s.index[def.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, kind, def.Name)
		}
		if def.Rule == nil {
			return nil, fmt.Errorf("%w: %s: field %q has no rule", ErrInvalidSchema, kind, def.Name)
		}

		f := field{name: def.Name, validate: def.Rule.validator()}
		switch r := def.Rule.(type) {
		case direct:
			if r.fn == nil {
				return nil, fmt.Errorf("%w: %s: field %q has a nil validator", ErrInvalidSchema, kind, def.Name)
			}
		case described:
			f.def = r.def
			f.hasDefault = true
			if f.validate == nil {
				f.validate = Pass
			}
		}

		slot := len(s.fields)
		s.index[def.Name] = slot
		s.fields = append(s.fields, f)
		s.accessors[def.Name] = accessor{
			get: func(e *Entity) any { return e.data[slot] },
			set: func(e *Entity, value any) {
				if sameValue(e.data[slot], value) {
					return
				}
				e.data[slot] = value
				e.validate(TriggerWrite)
			},
		}
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is meant for
// package-level schema variables.
func MustSchema(kind string, defs ...FieldDef) *Schema {
	s, err := NewSchema(kind, defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind returns the kind name, e.g. "Foo".
func (s *Schema) Kind() string { return s.kind }

// Label returns the name handed to validators, e.g. "FooEntity".
func (s *Schema) Label() string { return s.label }

// Fields returns the field names in declaration order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Has reports whether name is a field of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Default returns the declared default of a field. ok is false for unknown
// fields and for fields declared with Direct.
func (s *Schema) Default(name string) (value any, ok bool) {
	i, found := s.index[name]
	if !found {
		return nil, false
	}
	return s.fields[i].def, s.fields[i].hasDefault
}

// FieldInfo is the serializable description of a schema field.
type FieldInfo struct {
	Name    string `json:"name"`
	Default any    `json:"default,omitempty"`
}

// MarshalJSON describes the schema as its kind and ordered fields.
// Validators are not serializable and are omitted.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	fields := make([]FieldInfo, len(s.fields))
	for i, f := range s.fields {
		fields[i] = FieldInfo{Name: f.name, Default: f.def}
	}
	return json.Marshal(struct {
		Kind   string      `json:"kind"`
		Fields []FieldInfo `json:"fields"`
	}{Kind: s.kind, Fields: fields})
}
