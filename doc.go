// Package schemakit provides a composable runtime validation engine for
// structured records: typed primitive validators, array and object
// validators, a single type-coercion boundary, cross-field dependency rules,
// and deterministic error aggregation.
//
// Validators are built fluently, combined with Field into a Schema, and run
// against plain map[string]any records or typed structs. A validation run
// never panics on bad input values; it aggregates every violation into an
// immutable Outcome whose errors carry both a self-contained message and a
// dot/bracket field path ("address.postalCode", "tags[2]").
//
// # Architecture
//
// Each source file holds one validator family (string.go, number.go,
// date.go, array.go, object.go). Typed validators implement the generic
// Validator[T] contract and know nothing about representation: Field wraps
// them with the one coercion boundary in the package, which widens numeric
// types, parses date strings, materializes slices, and introspects records,
// rejecting everything else with a single "must be a {kind}" error. Object
// validators walk declared properties in lexicographic order and run
// dependency rules last, so error order is deterministic.
//
// Configuration and validation are separate phases: fluent setters mutate a
// validator freely until its first Validate call seals it, after which any
// setter panics with ErrSealed. A sealed validator is safe for concurrent
// use. Malformed configuration (negative bounds, nil validators, unknown
// property names) panics at build time with a sentinel error; input data can
// only ever fail the outcome.
//
// # Usage
//
//	schema := schemakit.Object(schemakit.Schema{
//	    "username": schemakit.Field(schemakit.String().MinLength(3).MaxLength(20)),
//	    "email":    schemakit.Field(schemakit.String().Email()),
//	    "age":      schemakit.Field(schemakit.Number().Min(0).Max(120).Integer()),
//	}).MarkOptional("age").Strict()
//
//	out := schema.Validate(map[string]any{
//	    "username": "al",
//	    "email":    "alice@example.com",
//	})
//	if !out.Valid() {
//	    for _, err := range out.Errors() {
//	        // err.Field = "username", err.Message = "username: must be at least 3 characters long"
//	    }
//	}
//
// # Error Handling
//
// Outcome.Err returns the aggregated errors as a ValidationErrors value that
// implements the error interface and unwraps with AsValidationErrors, so
// callers can bubble a single error and still reach field-level details via
// Has, Get, and Fields.
//
// # Concurrency
//
// Validators hold no per-run state. After sealing, a validator (and any
// schema built from it) may be shared across goroutines.
package schemakit
