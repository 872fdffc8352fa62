package declare_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/schematic/pkg/declare"
	"github.com/aretw0/schematic/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	decls, err := declare.LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, decls, 2, "non-declaration files are skipped")

	assert.Equal(t, "Address", decls[0].Kind)
	assert.Equal(t, "Person", decls[1].Kind)
	assert.Equal(t, "Someone we can mail things to", decls[1].Description)
	assert.Equal(t, []any{"admin", "user"}, decls[1].Fields[1].Enum)
	assert.True(t, decls[1].Fields[3].Many)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "kind: [unclosed"},
		{"unknown key", "kind: X\ncolour: red"},
		{"no kind", "fields:\n  - name: a\n    type: string"},
		{"bad type", "kind: X\nfields:\n  - name: a\n    type: date"},
		{"duplicate", "kind: X\nfields:\n  - name: a\n  - name: a"},
		{"type and entity", "kind: X\nfields:\n  - name: a\n    type: string\n    entity: Y"},
		{"many without entity", "kind: X\nfields:\n  - name: a\n    many: true"},
		{"enum on entity", "kind: X\nfields:\n  - name: a\n    entity: Y\n    enum: [1]"},
		{"unnamed", "kind: X\nfields:\n  - type: string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := declare.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, declare.ErrInvalidDeclaration)
		})
	}
}

func TestParse_AggregatesProblems(t *testing.T) {
	_, err := declare.Parse([]byte("fields:\n  - name: a\n    type: date\n  - name: a"))
	require.Error(t, err)

	problems := declare.Problems(err)
	assert.Len(t, problems, 3)
	var fe *declare.FieldError
	assert.ErrorAs(t, err, &fe)
}

func TestLoad_PrefixesPath(t *testing.T) {
	_, err := declare.Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestDeclaration_Schema(t *testing.T) {
	decl, err := declare.Load(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)

	schema, err := decl.Schema()
	require.NoError(t, err)
	assert.Equal(t, "PersonEntity", schema.Label())
	assert.Equal(t, []string{"name", "role", "address", "previous", "tags"}, schema.Fields())

	p := entity.New(schema, map[string]any{"role": "root", "tags": []any{"a", 1}})
	assert.Equal(t, "anonymous", p.Fetch()["name"])
	assert.Equal(t, entity.Errors{
		"role": {Errors: []string{"role expected one of [admin, user], got root on PersonEntity"}},
		"tags": {Errors: []string{"tags element 1: expected string, got int on PersonEntity"}},
	}, p.Errors())

	require.NoError(t, p.Set("address", map[string]any{"street": "x"}))
	assert.Equal(t, []string{"address expected entity Address, got map[string]interface {} on PersonEntity"},
		p.Errors()["address"].Errors)
}

func TestDeclaration_SchemaRequired(t *testing.T) {
	decl, err := declare.Parse([]byte("kind: Address\nfields:\n  - name: street\n    type: string\n    required: true"))
	require.NoError(t, err)
	schema, err := decl.Schema()
	require.NoError(t, err)

	a := entity.New(schema, nil)
	assert.Equal(t, []string{"street is required on AddressEntity"}, a.Errors()["street"].Errors)
}
