package rules

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Type defines the contract for checking a single value.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Check reports why value does not conform, or nil.
	Check(value any) error
}

// StringType accepts string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Check(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType accepts integers and floats holding whole numbers (as decoded from JSON).
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Check(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType accepts any numeric value.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Check(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

// BoolType accepts booleans.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Check(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// AnyType accepts everything.
type AnyType struct{}

func (t *AnyType) Name() string    { return "any" }
func (t *AnyType) Check(any) error { return nil }

// SliceType accepts slices whose elements all conform to an element type.
type SliceType struct {
	elem Type
}

func (t *SliceType) Name() string {
	return "[" + t.elem.Name() + "]"
}

func (t *SliceType) Check(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := range rv.Len() {
		if err := t.elem.Check(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// EnumType accepts one of a fixed set of comparable values.
type EnumType struct {
	values []any
}

func (t *EnumType) Name() string { return "enum" }

func (t *EnumType) Check(value any) error {
	if slices.ContainsFunc(t.values, func(v any) bool { return looseEqual(v, value) }) {
		return nil
	}
	opts := make([]string, len(t.values))
	for i, v := range t.values {
		opts[i] = fmt.Sprint(v)
	}
	return fmt.Errorf("expected one of [%s], got %v", strings.Join(opts, ", "), value)
}

// Kinded is implemented by entities, which report the kind of their schema.
type Kinded interface {
	Kind() string
}

// EntityType accepts entities of one kind.
type EntityType struct {
	kind string
}

func (t *EntityType) Name() string { return "entity:" + t.kind }

func (t *EntityType) Check(value any) error {
	k, ok := value.(Kinded)
	if !ok {
		return fmt.Errorf("expected entity %s, got %T", t.kind, value)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return fmt.Errorf("expected entity %s, got nil", t.kind)
	}
	if got := k.Kind(); got != t.kind {
		return fmt.Errorf("expected entity %s, got entity %s", t.kind, got)
	}
	return nil
}

// CustomType applies a user-defined check.
type CustomType struct {
	name  string
	check func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Check(value any) error {
	return t.check(value)
}

// String creates a string type.
func String() Type { return &StringType{} }

// Int creates an integer type.
func Int() Type { return &IntType{} }

// Float creates a float type.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type.
func Bool() Type { return &BoolType{} }

// Any creates a type that accepts every value.
func Any() Type { return &AnyType{} }

// Slice creates a slice type for elements of the given type.
func Slice(elem Type) Type {
	return &SliceType{elem: elem}
}

// OneOf creates an enum type accepting only the given values.
func OneOf(values ...any) Type {
	return &EnumType{values: values}
}

// Entity creates a type accepting entities of the given kind.
func Entity(kind string) Type {
	return &EntityType{kind: kind}
}

// Custom creates a named type with a user-defined check.
func Custom(name string, check func(any) error) Type {
	return &CustomType{name: name, check: check}
}

// ParseType converts a type name to a Type.
// Supports "string", "int", "float", "bool", "any" and slices such as "[string]".
func ParseType(name string) (Type, error) {
	if len(name) > 2 && name[0] == '[' && name[len(name)-1] == ']' {
		elem, err := ParseType(name[1 : len(name)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch name {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "any", "":
		return Any(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", name)
	}
}

// looseEqual treats numbers of different Go types as equal when they hold the
// same value, so enum values read from YAML match values decoded from JSON.
func looseEqual(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return !ra.IsValid() && !rb.IsValid()
	}
	if ra.Type() != rb.Type() || !ra.Type().Comparable() {
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
