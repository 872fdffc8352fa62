/*
Package schematic builds validated, schema-driven entities from plain data.

Kinds are declared either in Go (see package entity) or in YAML/JSON
declaration files (see package declare). A Catalog loads declarations from a
directory and turns incoming maps into live entities whose errors and
validity are recomputed on every change.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/schematic"
	)

	func main() {
		catalog, err := schematic.New("./kinds")
		if err != nil {
			log.Fatal(err)
		}

		report, err := catalog.Validate("Person", map[string]any{
			"name":    "Ada",
			"address": map[string]any{"street": "Main St"},
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(report.Valid, report.Errors)
	}

For live editing, Build returns the entity itself:

	person, _ := catalog.Build("Person", nil)
	_ = person.Set("name", "Grace") // re-validates
	person.Fetch()                  // plain data, nested entities flattened

# Packages

  - entity: the core. Schema, default merging, accessors, validation, Fetch.
  - rules: reusable validators (types, enums, required).
  - declare: declaration documents, OpenAPI export.
  - registry: named kinds and nested construction.
  - observability: Prometheus metrics from entity hooks.
  - adapters/http, adapters/mcp: stateless validation over HTTP and MCP.
*/
package schematic
