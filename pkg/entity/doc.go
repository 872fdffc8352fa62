/*
Package entity provides schema-driven records with live validation.

A Schema declares, in order, the fields of a kind together with the rule that
validates each one. Instances built from a Schema merge caller data with the
schema defaults, re-validate whenever a field changes, and flatten themselves
(and any nested entities) into plain data on Fetch.

# Declaring a kind

	var FooSchema = entity.MustSchema("Foo",
	    entity.F("field", entity.Direct(func(data entity.Data, field, label string) error {
	        if data[field] != "valid" {
	            return entity.Message(field + " wrong on " + label)
	        }
	        return nil
	    })),
	    entity.F("status", entity.Described(nil, "draft")),
	)

	type Foo struct{ *entity.Entity }

	func NewFoo(data map[string]any) *Foo {
	    return &Foo{entity.New(FooSchema, data)}
	}

# Lifecycle

	foo := NewFoo(map[string]any{"field": "invalid"})
	foo.Valid()                 // false
	foo.Errors()["field"].Errors // ["field wrong on FooEntity"]
	_ = foo.Set("field", "valid")
	foo.Valid()                 // true

Validation failures are data: they live in Errors and Valid and are never
returned as Go errors. An Entity is not safe for concurrent use; a Schema is
immutable and may be shared freely.
*/
package entity
