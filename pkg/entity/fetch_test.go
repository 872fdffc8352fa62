package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/schematic/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addressSchema = entity.MustSchema("Address",
		entity.F("street", entity.Described(nil, "Main St")),
		entity.F("number", entity.Direct(entity.Pass)),
	)
	personSchema = entity.MustSchema("Person",
		entity.F("name", entity.Direct(entity.Pass)),
		entity.F("address", entity.Direct(entity.Pass)),
		entity.F("previous", entity.Direct(entity.Pass)),
		entity.F("matrix", entity.Direct(entity.Pass)),
	)
)

type Address struct{ *entity.Entity }

func NewAddress(data map[string]any) *Address {
	return &Address{entity.New(addressSchema, data)}
}

func TestFetch_FlattensNestedEntities(t *testing.T) {
	home := NewAddress(map[string]any{"number": 42})
	old := NewAddress(map[string]any{"street": "Elm St", "number": 7})

	person := entity.New(personSchema, map[string]any{
		"name":     "Ada",
		"address":  home,
		"previous": []*Address{old, home},
		"matrix":   [][]any{{old}, {1, "x"}},
	})

	got := person.Fetch()

	homeRaw := map[string]any{"street": "Main St", "number": 42}
	oldRaw := map[string]any{"street": "Elm St", "number": 7}
	assert.Equal(t, map[string]any{
		"name":     "Ada",
		"address":  homeRaw,
		"previous": []any{oldRaw, homeRaw},
		"matrix":   []any{[]any{oldRaw}, []any{1, "x"}},
	}, got)
}

func TestFetch_DoesNotAggregateChildValidity(t *testing.T) {
	strict := entity.MustSchema("Strict", entity.F("x", entity.Direct(mustBeValid)))
	child := entity.New(strict, nil)
	require.False(t, child.Valid())

	parent := entity.New(personSchema, map[string]any{"address": child})
	assert.True(t, parent.Valid())

	parent.Fetch()
	assert.True(t, parent.Valid(), "fetch leaves validation state alone")
	assert.Equal(t, map[string]any{"x": nil}, parent.Fetch()["address"])
}

func TestFetchValue_Plain(t *testing.T) {
	var nilAddr *Address
	var nilEntity *entity.Entity

	assert.Nil(t, entity.FetchValue(nil))
	assert.Nil(t, entity.FetchValue(nilEntity))
	assert.Equal(t, 3, entity.FetchValue(3))
	assert.Equal(t, []byte("raw"), entity.FetchValue([]byte("raw")))
	assert.Equal(t, []any{1, 2}, entity.FetchValue([2]int{1, 2}))
	assert.Equal(t, map[string]int{"a": 1}, entity.FetchValue(map[string]int{"a": 1}))
	assert.Nil(t, entity.FetchValue(nilAddr))
	assert.Equal(t, []any{nil}, entity.FetchValue([]*entity.Entity{nilEntity}))
}

func TestFetchValue_ZeroValueWrapper(t *testing.T) {
	var got any
	require.NotPanics(t, func() { got = entity.FetchValue(Address{}) })
	assert.Nil(t, got)

	require.NotPanics(t, func() { got = entity.FetchValue(&Address{}) })
	assert.Nil(t, got)

	person := entity.New(personSchema, map[string]any{"name": "Ada", "previous": []Address{{}}})
	assert.Equal(t, []any{nil}, person.Fetch()["previous"])
}

func TestMarshalJSON(t *testing.T) {
	e := entity.New(personSchema, map[string]any{
		"name":    "Ada",
		"address": NewAddress(map[string]any{"number": 1}),
	})

	raw, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Ada",
		"address": {"street": "Main St", "number": 1},
		"previous": null,
		"matrix": null
	}`, string(raw))
}

func TestFetchInto(t *testing.T) {
	type address struct {
		Street string
		Number int
	}
	type person struct {
		Name    string  `mapstructure:"name"`
		Address address `mapstructure:"address"`
	}

	e := entity.New(personSchema, map[string]any{
		"name":    "Ada",
		"address": NewAddress(map[string]any{"number": "12"}),
	})

	var out person
	require.NoError(t, entity.FetchInto(e, &out))
	assert.Equal(t, person{Name: "Ada", Address: address{Street: "Main St", Number: 12}}, out)
}
