package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTypes(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		value   any
		wantErr bool
	}{
		{String(), "string", "hello", false},
		{String(), "string", "", false},
		{String(), "string", 42, true},
		{Int(), "int", 42, false},
		{Int(), "int", int64(42), false},
		{Int(), "int", uint8(4), false},
		{Int(), "int", float64(42), false},
		{Int(), "int", 42.5, true},
		{Int(), "int", "42", true},
		{Float(), "float", 3.14, false},
		{Float(), "float", 3, false},
		{Float(), "float", "3.14", true},
		{Bool(), "bool", true, false},
		{Bool(), "bool", "true", true},
		{Any(), "any", struct{}{}, false},
		{Slice(String()), "[string]", []string{"a"}, false},
		{Slice(String()), "[string]", []any{"a", "b"}, false},
		{Slice(String()), "[string]", []any{"a", 1}, true},
		{Slice(Int()), "[int]", "nope", true},
		{OneOf("admin", "user"), "enum", "admin", false},
		{OneOf("admin", "user"), "enum", "root", true},
		{OneOf(1, 2), "enum", float64(2), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.typ.Name())
		err := tt.typ.Check(tt.value)
		assert.Equal(t, tt.wantErr, err != nil, "%s.Check(%#v) = %v", tt.name, tt.value, err)
	}
}

func TestSliceType_ReportsElement(t *testing.T) {
	err := Slice(Int()).Check([]any{1, "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")
}

func TestCustomType(t *testing.T) {
	positive := Custom("positive_int", func(v any) error {
		i, ok := v.(int)
		if !ok || i <= 0 {
			return errors.New("must be positive")
		}
		return nil
	})

	assert.Equal(t, "positive_int", positive.Name())
	assert.NoError(t, positive.Check(3))
	assert.Error(t, positive.Check(-3))
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"string", "int", "float", "bool", "any", "[string]", "[[int]]"} {
		typ, err := ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, typ.Name())
	}

	typ, err := ParseType("")
	require.NoError(t, err)
	assert.Equal(t, "any", typ.Name())

	_, err = ParseType("date")
	assert.Error(t, err)
	_, err = ParseType("[date]")
	assert.Error(t, err)
}

type kinded string

func (k kinded) Kind() string { return string(k) }

func TestEntityType(t *testing.T) {
	typ := Entity("Address")
	assert.Equal(t, "entity:Address", typ.Name())
	assert.NoError(t, typ.Check(kinded("Address")))
	assert.EqualError(t, typ.Check(kinded("Person")), "expected entity Address, got entity Person")
	assert.Error(t, typ.Check(map[string]any{"street": "x"}))
	assert.Equal(t, "[entity:Address]", Slice(typ).Name())
	assert.Error(t, Slice(typ).Check([]any{kinded("Address"), 3}))
}
