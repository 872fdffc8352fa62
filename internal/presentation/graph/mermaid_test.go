package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/schematic/internal/presentation/graph"
	"github.com/aretw0/schematic/pkg/declare"
)

func TestGenerateMermaid(t *testing.T) {
	decls := []*declare.Declaration{
		{Kind: "Address", Fields: []declare.Field{
			{Name: "street", Type: "string", Required: true},
		}},
		{Kind: "Person", Fields: []declare.Field{
			{Name: "role", Enum: []any{"a"}},
			{Name: "tags", Type: "[string]"},
			{Name: "misc"},
			{Name: "address", Entity: "Address"},
			{Name: "previous", Entity: "Address", Many: true},
		}},
		{Kind: "my-kind.v2"},
	}

	out := graph.GenerateMermaid(decls)

	contains := []string{
		"classDiagram\n",
		"class Address {",
		"string street*",
		"enum role",
		"List~string~ tags",
		"any misc",
		"Address address",
		"List~Address~ previous",
		`Person *-- "1" Address : address`,
		`Person *-- "*" Address : previous`,
		"class my_kind_v2 {",
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, out)
		}
	}
}
