package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/schematic/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind string
		defs []entity.FieldDef
	}{
		{"empty kind", "", nil},
		{"empty field name", "K", []entity.FieldDef{entity.F("", entity.Direct(entity.Pass))}},
		{"duplicate field", "K", []entity.FieldDef{
			entity.F("a", entity.Direct(entity.Pass)),
			entity.F("a", entity.Described(nil, 1)),
		}},
		{"nil rule", "K", []entity.FieldDef{entity.F("a", nil)}},
		{"nil direct validator", "K", []entity.FieldDef{entity.F("a", entity.Direct(nil))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entity.NewSchema(tt.kind, tt.defs...)
			assert.ErrorIs(t, err, entity.ErrInvalidSchema)
		})
	}
}

func TestMustSchema_Panics(t *testing.T) {
	assert.Panics(t, func() { entity.MustSchema("") })
}

func TestSchema_Describe(t *testing.T) {
	s := entity.MustSchema("Foo",
		entity.F("b", entity.Direct(entity.Pass)),
		entity.F("a", entity.Described(nil, "x")),
	)

	assert.Equal(t, "Foo", s.Kind())
	assert.Equal(t, "FooEntity", s.Label())
	assert.Equal(t, []string{"b", "a"}, s.Fields(), "declaration order is kept")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	def, ok := s.Default("a")
	assert.True(t, ok)
	assert.Equal(t, "x", def)
	_, ok = s.Default("b")
	assert.False(t, ok)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Foo","fields":[{"name":"b"},{"name":"a","default":"x"}]}`, string(raw))
}

func TestSchema_SharedAcrossInstances(t *testing.T) {
	s := entity.MustSchema("Foo", entity.F("a", entity.Described(nil, "x")))

	first := entity.New(s, nil)
	second := entity.New(s, map[string]any{"a": "y"})
	require.NoError(t, first.Set("a", "z"))

	assert.Same(t, first.Schema(), second.Schema())
	assert.Equal(t, "y", must(second.Get("a")))
	def, _ := s.Default("a")
	assert.Equal(t, "x", def)
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "plain", entity.MessageOf(entity.Message("plain")))
	assert.Equal(t, "msg", entity.MessageOf(&entity.StructuredError{Kind: "k", Message: "msg"}))
	assert.Equal(t, "k: msg", (&entity.StructuredError{Kind: "k", Message: "msg"}).Error())
}
