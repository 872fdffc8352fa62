package declare

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/aretw0/schematic/pkg/entity"
	"github.com/aretw0/schematic/pkg/rules"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Field declares one schema field.
type Field struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Entity      string `json:"entity,omitempty" yaml:"entity,omitempty" mapstructure:"entity"` // Kind of a nested entity
	Many        bool   `json:"many,omitempty" yaml:"many,omitempty" mapstructure:"many"`       // Nested entities come as a list
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`
	Enum        []any  `json:"enum,omitempty" yaml:"enum,omitempty" mapstructure:"enum"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// Declaration is the document form of an entity schema.
type Declaration struct {
	Kind        string  `json:"kind" yaml:"kind" mapstructure:"kind"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Fields      []Field `json:"fields" yaml:"fields" mapstructure:"fields"`
}

// Extensions accepted when loading a directory.
var Extensions = []string{".yaml", ".yml", ".json"}

// Parse decodes and validates a YAML or JSON declaration.
func Parse(data []byte) (*Declaration, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeclaration, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDeclaration)
	}

	var decl Declaration
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &decl,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeclaration, err)
	}

	if err := decl.Validate(); err != nil {
		return nil, err
	}
	return &decl, nil
}

// Load parses the declaration stored at path.
func Load(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decl, nil
}

// LoadDir parses every declaration file directly inside dir, in file name order.
func LoadDir(dir string) ([]*Declaration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var decls []*Declaration
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(Extensions, filepath.Ext(entry.Name())) {
			continue
		}
		decl, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// Validate reports every structural problem of the declaration at once.
func (d *Declaration) Validate() error {
	var errs []error
	if d.Kind == "" {
		errs = append(errs, &FieldError{Reason: "kind is required"})
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			errs = append(errs, &FieldError{Reason: fmt.Sprintf("field #%d has no name", i+1)})
			continue
		}
		if seen[f.Name] {
			errs = append(errs, &FieldError{Field: f.Name, Reason: "declared twice"})
		}
		seen[f.Name] = true

		if f.Entity != "" && f.Type != "" {
			errs = append(errs, &FieldError{Field: f.Name, Reason: "type and entity are exclusive"})
		}
		if f.Entity != "" && len(f.Enum) > 0 {
			errs = append(errs, &FieldError{Field: f.Name, Reason: "enum cannot constrain an entity"})
		}
		if f.Many && f.Entity == "" {
			errs = append(errs, &FieldError{Field: f.Name, Reason: "many requires entity"})
		}
		if f.Entity == "" {
			if _, err := rules.ParseType(f.Type); err != nil {
				errs = append(errs, &FieldError{Field: f.Name, Reason: err.Error()})
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDeclaration, d.Kind, &AggregateError{Errors: errs})
	}
	return nil
}

// Nested reports whether the field holds child entities.
func (f Field) Nested() bool { return f.Entity != "" }

// ValueType returns the rules type checking the field value.
func (f Field) ValueType() (rules.Type, error) {
	if f.Entity != "" {
		t := rules.Entity(f.Entity)
		if f.Many {
			return rules.Slice(t), nil
		}
		return t, nil
	}
	return rules.ParseType(f.Type)
}

// Validator builds the entity validator of the field.
func (f Field) Validator() (entity.Validator, error) {
	t, err := f.ValueType()
	if err != nil {
		return nil, err
	}
	checks := []entity.Validator{rules.Validator(t, f.Required)}
	if len(f.Enum) > 0 {
		checks = append(checks, rules.Validator(rules.OneOf(f.Enum...), false))
	}
	if len(checks) == 1 {
		return checks[0], nil
	}
	return rules.All(checks...), nil
}

// Rule builds the entity rule of the field: Described when a default is
// declared, Direct otherwise.
func (f Field) Rule() (entity.Rule, error) {
	v, err := f.Validator()
	if err != nil {
		return nil, err
	}
	if f.Default != nil {
		return entity.Described(v, f.Default), nil
	}
	return entity.Direct(v), nil
}

// Schema builds the entity schema of the declaration.
func (d *Declaration) Schema() (*entity.Schema, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	defs := make([]entity.FieldDef, 0, len(d.Fields))
	for _, f := range d.Fields {
		rule, err := f.Rule()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: field %q: %w", ErrInvalidDeclaration, d.Kind, f.Name, err)
		}
		defs = append(defs, entity.F(f.Name, rule))
	}
	return entity.NewSchema(d.Kind, defs...)
}
