package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/schematic/pkg/declare"
)

// GenerateMermaid produces a Mermaid class diagram of the given declarations.
// Each kind becomes a class listing its fields as "type name"; nested
// entities become composition edges:
// - single child: Person *-- "1" Address : address
// - list of children: Person *-- "*" Address : previous
func GenerateMermaid(decls []*declare.Declaration) string {
	var sb strings.Builder
	sb.WriteString("classDiagram\n")

	for _, d := range decls {
		id := sanitizeMermaidID(d.Kind)
		fmt.Fprintf(&sb, "    class %s {\n", id)
		for _, f := range d.Fields {
			marker := ""
			if f.Required {
				marker = "*"
			}
			fmt.Fprintf(&sb, "        %s %s%s\n", fieldType(f), f.Name, marker)
		}
		sb.WriteString("    }\n")
	}

	for _, d := range decls {
		for _, f := range d.Fields {
			if !f.Nested() {
				continue
			}
			cardinality := "1"
			if f.Many {
				cardinality = "*"
			}
			fmt.Fprintf(&sb, "    %s *-- \"%s\" %s : %s\n",
				sanitizeMermaidID(d.Kind), cardinality, sanitizeMermaidID(f.Entity), f.Name)
		}
	}

	return sb.String()
}

func fieldType(f declare.Field) string {
	switch {
	case f.Nested() && f.Many:
		return "List~" + sanitizeMermaidID(f.Entity) + "~"
	case f.Nested():
		return sanitizeMermaidID(f.Entity)
	case len(f.Enum) > 0:
		return "enum"
	case strings.HasPrefix(f.Type, "["):
		return "List~" + strings.Trim(f.Type, "[]") + "~"
	case f.Type == "":
		return "any"
	default:
		return f.Type
	}
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '-', '.', ' ', ':':
			return '_'
		}
		return r
	}, id)
}
