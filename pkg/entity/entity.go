package entity

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMode selects when a field falls back to its declared default.
type DefaultMode int

const (
	// DefaultsOnFalsy replaces every falsy supplied value (0, "", false, nil...)
	// with the default. This is the historical behavior and the zero value.
	DefaultsOnFalsy DefaultMode = iota
	// DefaultsOnMissing only replaces keys that are absent or nil.
	DefaultsOnMissing
)

// Option configures an Entity at construction.
type Option func(*Entity)

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(e *Entity) {
		e.hooks = e.hooks.Chain(hooks)
	}
}

// WithLogger sets a structured logger. Validation passes are logged at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Entity) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDefaultMode overrides how defaults are merged.
func WithDefaultMode(mode DefaultMode) Option {
	return func(e *Entity) {
		e.mode = mode
	}
}

// Model is the capability shared by every schema-driven record.
type Model interface {
	Fetcher
	Validate()
	Valid() bool
	Errors() Errors
}

var _ Model = (*Entity)(nil)

// Entity is a live record governed by a Schema.
type Entity struct {
	schema *Schema
	data   []any
	errors Errors
	valid  bool

	hooks  Hooks
	logger *slog.Logger
	mode   DefaultMode
}

// New builds an entity of schema from data, merging defaults and running the
// initial validation. Keys of data that the schema does not declare are dropped.
func New(schema *Schema, data map[string]any, opts ...Option) *Entity {
	if schema == nil {
		panic("entity: New called with a nil schema")
	}

	e := &Entity{
		schema: schema,
		errors: Errors{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.data = e.mergeDefault(data)
	e.validate(TriggerConstruct)
	return e
}

func (e *Entity) mergeDefault(input map[string]any) []any {
	out := make([]any, len(e.schema.fields))
	for i, f := range e.schema.fields {
		v, supplied := input[f.name]
		switch {
		case e.mode == DefaultsOnMissing && supplied && v != nil:
			out[i] = v
		case e.mode == DefaultsOnFalsy && Truthy(v):
			out[i] = v
		default:
			out[i] = f.def
		}
	}
	return out
}

// Schema returns the schema the entity was built from.
func (e *Entity) Schema() *Schema { return e.schema }

// Kind returns the schema kind.
func (e *Entity) Kind() string { return e.schema.kind }

// Label returns the validator label, e.g. "FooEntity".
func (e *Entity) Label() string { return e.schema.label }

// Get reads a field. ok is false when the schema does not declare it.
func (e *Entity) Get(name string) (value any, ok bool) {
	acc, ok := e.schema.accessors[name]
	if !ok {
		return nil, false
	}
	return acc.get(e), true
}

// Set writes a field and re-validates the whole entity if the value changed.
// Writing the value already held is a no-op.
func (e *Entity) Set(name string, value any) error {
	acc, ok := e.schema.accessors[name]
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, e.schema.label, name)
	}
	acc.set(e, value)
	return nil
}

// Accessor is a getter/setter pair bound to one field of one entity.
type Accessor struct {
	Name string
	e    *Entity
	acc  accessor
}

// Get returns the current value of the field.
func (a Accessor) Get() any { return a.acc.get(a.e) }

// Set writes the field, re-validating the owner if the value changed.
func (a Accessor) Set(value any) { a.acc.set(a.e, value) }

// Field returns the accessor of a declared field.
func (e *Entity) Field(name string) (Accessor, bool) {
	acc, ok := e.schema.accessors[name]
	if !ok {
		return Accessor{}, false
	}
	return Accessor{Name: name, e: e, acc: acc}, true
}

// Value reads a field as T. ok is false for unknown fields and for values
// of another type.
func Value[T any](e *Entity, name string) (T, bool) {
	raw, ok := e.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// Validate recomputes Errors and Valid from the current data.
func (e *Entity) Validate() {
	e.validate(TriggerExplicit)
}

// Valid reports whether the last validation pass found no errors.
func (e *Entity) Valid() bool { return e.valid }

// Errors returns a copy of the errors found by the last validation pass.
func (e *Entity) Errors() Errors { return e.errors.Clone() }

func (e *Entity) validate(trigger Trigger) {
	e.errors = Errors{}

	snapshot := e.snapshot()
	for _, f := range e.schema.fields {
		e.validateField(f, snapshot)
	}
	e.valid = e.errors.Empty()

	if e.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.logger.Debug("entity validated",
			"kind", e.schema.kind,
			"trigger", trigger,
			"valid", e.valid,
			"failing", e.errors.Fields(),
		)
	}

	if e.hooks.OnValidate != nil {
		e.hooks.OnValidate(&ValidationEvent{
			Kind:    e.schema.kind,
			Label:   e.schema.label,
			Trigger: trigger,
			Valid:   e.valid,
			Errors:  e.errors.Clone(),
		})
	}
}

func (e *Entity) validateField(f field, data Data) {
	if err := f.validate(data, f.name, e.schema.label); failed(err) {
		e.errors.add(f.name, MessageOf(err))
	}
}

func (e *Entity) snapshot() Data {
	data := make(Data, len(e.data))
	for i, f := range e.schema.fields {
		data[f.name] = e.data[i]
	}
	return data
}
