package ports

import (
	"testing"

	"github.com/aretw0/schematic/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCatalogContract runs a suite of tests to verify that a Catalog
// implementation adheres to the interface contract. The catalog must hold at
// least one kind.
func RunCatalogContract(t *testing.T, catalog Catalog) {
	kinds := catalog.Kinds()
	require.NotEmpty(t, kinds, "contract needs at least one kind")

	t.Run("Kinds are sorted", func(t *testing.T) {
		assert.IsIncreasing(t, kinds)
	})

	t.Run("Describe every kind", func(t *testing.T) {
		for _, kind := range kinds {
			decl, err := catalog.Describe(kind)
			require.NoError(t, err, kind)
			assert.Equal(t, kind, decl.Kind)

			schema, err := catalog.OpenAPI(kind)
			require.NoError(t, err, kind)
			assert.Len(t, schema.Properties, len(decl.Fields))
		}
	})

	t.Run("Validate returns every declared field", func(t *testing.T) {
		for _, kind := range kinds {
			decl, err := catalog.Describe(kind)
			require.NoError(t, err)

			report, err := catalog.Validate(kind, map[string]any{"__not_a_field__": 1})
			require.NoError(t, err, kind)
			assert.Equal(t, kind, report.Kind)
			assert.Len(t, report.Data, len(decl.Fields))
			assert.NotContains(t, report.Data, "__not_a_field__")
			assert.Equal(t, report.Errors.Empty(), report.Valid)
		}
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := catalog.Validate("__no_such_kind__", nil)
		assert.ErrorIs(t, err, registry.ErrKindNotFound)
		_, err = catalog.Describe("__no_such_kind__")
		assert.ErrorIs(t, err, registry.ErrKindNotFound)
	})
}
