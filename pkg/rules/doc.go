// Package rules provides reusable validators for entity schemas.
//
// A Type checks the shape of a single value ("string", "int", "[string]"...).
// Validator turns a Type into an entity.Validator whose failures carry the
// type name as their kind:
//
//	schema := entity.MustSchema("Job",
//	    entity.F("name", entity.Direct(rules.Validator(rules.String(), true))),
//	    entity.F("retries", entity.Described(rules.Validator(rules.Int(), false), 3)),
//	    entity.F("tags", entity.Direct(rules.Validator(rules.Slice(rules.String()), false))),
//	)
//
// Types can also be parsed from their names, which is how declaration files
// refer to them:
//
//	t, err := rules.ParseType("[int]")
package rules
