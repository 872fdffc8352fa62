package declare

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ComponentRef returns the OpenAPI reference of a kind's schema component.
func ComponentRef(kind string) string {
	return "#/components/schemas/" + kind
}

// OpenAPI describes the declaration as an OpenAPI 3 object schema. Nested
// entities are emitted as references to their own components.
func (d *Declaration) OpenAPI() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Title = d.Kind
	s.Description = d.Description

	for _, f := range d.Fields {
		if f.Entity != "" {
			ref := openapi3.NewSchemaRef(ComponentRef(f.Entity), nil)
			if f.Many {
				list := openapi3.NewArraySchema()
				list.Items = ref
				list.Description = f.Description
				s.WithProperty(f.Name, list)
			} else {
				s.WithPropertyRef(f.Name, ref)
			}
		} else {
			s.WithProperty(f.Name, fieldSchema(f))
		}
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}

// Components returns the schema components of a set of declarations, keyed by kind.
func Components(decls ...*Declaration) openapi3.Schemas {
	out := make(openapi3.Schemas, len(decls))
	for _, d := range decls {
		out[d.Kind] = openapi3.NewSchemaRef("", d.OpenAPI())
	}
	return out
}

func fieldSchema(f Field) *openapi3.Schema {
	s := typeSchema(f.Type)
	s.Description = f.Description
	if f.Default != nil {
		s.Default = f.Default
	}
	if len(f.Enum) > 0 {
		s.Enum = f.Enum
	}
	return s
}

func typeSchema(name string) *openapi3.Schema {
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") && len(name) > 2 {
		return openapi3.NewArraySchema().WithItems(typeSchema(name[1 : len(name)-1]))
	}
	switch name {
	case "string":
		return openapi3.NewStringSchema()
	case "int":
		return openapi3.NewIntegerSchema()
	case "float":
		return openapi3.NewFloat64Schema()
	case "bool":
		return openapi3.NewBoolSchema()
	default:
		return openapi3.NewSchema()
	}
}
