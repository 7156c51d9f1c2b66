package schemakit

import "errors"

// Configuration errors. Schema construction is programmer-controlled, so a
// malformed schema is a bug in the caller and every guard below panics with
// the matching sentinel wrapped for errors.Is checks.
var (
	ErrNilValidator    = errors.New("validator cannot be nil")
	ErrNilSchema       = errors.New("schema cannot be nil")
	ErrEmptyProperty   = errors.New("property name cannot be empty")
	ErrUnknownProperty = errors.New("property is not declared in the schema")
	ErrNilPredicate    = errors.New("predicate cannot be nil")
	ErrNegativeBound   = errors.New("length bound cannot be negative")
	ErrInvalidBounds   = errors.New("minimum bound cannot exceed maximum bound")
	ErrUnsupportedType = errors.New("type has no schema kind")
	ErrSealed          = errors.New("validator is sealed after its first use")
)

// Combinator errors.
var (
	ErrUnboundedNegate    = errors.New("cannot negate a number validator without bounds")
	ErrInvalidCombination = errors.New("cannot combine negated number validators")
)

// ErrEmptyFailure guards the Outcome failure constructor: a failure with no
// errors would be indistinguishable from success.
var ErrEmptyFailure = errors.New("failure outcome requires at least one error")

// ErrNotRecord is returned by RecordFields for values that cannot cross the
// record boundary (anything that is not a string-keyed map, a Record, or a
// struct).
var ErrNotRecord = errors.New("value is not a structured record")
