/*
Package declare reads entity schemas from declaration documents.

A declaration is a YAML (or JSON) document naming a kind and its ordered
fields. Field order in the document is the validation order of the resulting
schema:

	kind: Person
	description: Someone we can mail things to
	fields:
	  - name: name
	    type: string
	    required: true
	    default: anonymous
	  - name: role
	    enum: [admin, user]
	  - name: address
	    entity: Address
	  - name: tags
	    type: "[string]"

Declarations are turned into an entity.Schema with Schema and into an
OpenAPI 3 schema component with OpenAPI.
*/
package declare
