package ports

import (
	"fmt"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/pkg/declare"
	"github.com/getkin/kin-openapi/openapi3"
)

// Catalog is the stateless surface adapters expose to remote callers.
// Each call builds its own entities, so implementations must be safe for
// concurrent use.
type Catalog interface {
	// Kinds returns the available kind names, sorted.
	Kinds() []string

	// Describe returns the declaration of a kind.
	Describe(kind string) (*declare.Declaration, error)

	// OpenAPI returns the OpenAPI 3 schema component of a kind.
	OpenAPI(kind string) (*openapi3.Schema, error)

	// Validate resolves data against a kind and reports its validation state.
	Validate(kind string, data map[string]any) (schematic.Report, error)
}

var _ Catalog = (*schematic.Catalog)(nil)

// Declarations describes every kind of c, in Kinds order.
func Declarations(c Catalog) ([]*declare.Declaration, error) {
	kinds := c.Kinds()
	decls := make([]*declare.Declaration, 0, len(kinds))
	for _, kind := range kinds {
		decl, err := c.Describe(kind)
		if err != nil {
			return nil, fmt.Errorf("failed to describe %s: %w", kind, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}
