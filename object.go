package schemakit

import (
	"fmt"
	"sort"
	"strings"
)

// Schema maps property names to field validators.
type Schema map[string]*FieldValidator

// DependencyPredicate inspects two resolved values plus the whole record and
// reports whether the dependency holds. Absent and null values both arrive
// as nil.
type DependencyPredicate func(record map[string]any, valueA, valueB any) bool

// DependencyRule expresses a cross-field constraint: two dot-separated paths
// resolve against the record root and feed the predicate. A failing rule is
// attributed to Property.
type DependencyRule struct {
	// Property names the field the failure is reported against.
	Property string

	// PathA and PathB locate the two values, dot-separated from the record
	// root ("address.country"). Paths may reach outside the declared schema.
	PathA string
	PathB string

	// Predicate decides whether the dependency holds.
	Predicate DependencyPredicate

	// Message overrides the default failure message. Optional.
	Message string
}

// ObjectValidator validates string-keyed records against a declared schema.
// Properties are required unless marked optional, unknown properties are
// tolerated unless strict mode is on, and dependency rules run last, against
// the full record.
//
// Validation walks declared properties in lexicographic order, so outcomes
// are deterministic regardless of map iteration order.
type ObjectValidator struct {
	seal     seal
	schema   Schema
	names    []string
	optional map[string]bool
	strict   bool
	rules    []DependencyRule
	message  string
}

// Object returns a validator for the given schema. The schema is copied, so
// later mutation of the argument has no effect. It panics with ErrNilSchema
// for a nil schema, ErrEmptyProperty for a blank property name, and
// ErrNilValidator for a nil field validator.
func Object(schema Schema) *ObjectValidator {
	if schema == nil {
		panic(fmt.Errorf("%w: Object", ErrNilSchema))
	}

	copied := make(Schema, len(schema))
	names := make([]string, 0, len(schema))
	for name, field := range schema {
		if strings.TrimSpace(name) == "" {
			panic(fmt.Errorf("%w: schema property", ErrEmptyProperty))
		}
		if field == nil {
			panic(fmt.Errorf("%w: property %q", ErrNilValidator, name))
		}
		copied[name] = field
		names = append(names, name)
	}
	sort.Strings(names)

	return &ObjectValidator{
		schema:   copied,
		names:    names,
		optional: make(map[string]bool),
	}
}

// MarkOptional exempts the named properties from the required check. Absent
// or null optional properties are skipped entirely; present values are still
// validated. It panics with ErrEmptyProperty for blank names and
// ErrUnknownProperty for names the schema does not declare.
func (v *ObjectValidator) MarkOptional(names ...string) *ObjectValidator {
	v.seal.guard()
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			panic(fmt.Errorf("%w: MarkOptional", ErrEmptyProperty))
		}
		if _, declared := v.schema[name]; !declared {
			panic(fmt.Errorf("%w: %q", ErrUnknownProperty, name))
		}
		v.optional[name] = true
	}
	return v
}

// Strict rejects properties the schema does not declare. Unknown names are
// aggregated, sorted, into a single failure.
func (v *ObjectValidator) Strict() *ObjectValidator {
	v.seal.guard()
	v.strict = true
	return v
}

// AddDependencyRule registers a cross-field rule. Rules run after all
// per-property checks, in registration order. It panics with
// ErrEmptyProperty when the property or either path is blank and with
// ErrNilPredicate when the predicate is nil.
func (v *ObjectValidator) AddDependencyRule(rule DependencyRule) *ObjectValidator {
	v.seal.guard()
	if strings.TrimSpace(rule.Property) == "" {
		panic(fmt.Errorf("%w: dependency rule property", ErrEmptyProperty))
	}
	if strings.TrimSpace(rule.PathA) == "" || strings.TrimSpace(rule.PathB) == "" {
		panic(fmt.Errorf("%w: dependency rule path", ErrEmptyProperty))
	}
	if rule.Predicate == nil {
		panic(fmt.Errorf("%w: dependency rule", ErrNilPredicate))
	}
	v.rules = append(v.rules, rule)
	return v
}

// WithMessage replaces every error this validator produces with msg. Field
// paths survive the override.
func (v *ObjectValidator) WithMessage(msg string) *ObjectValidator {
	v.seal.guard()
	v.message = msg
	return v
}

// Validate checks the record in four phases: null check, unknown properties
// under strict mode, declared properties in lexicographic order, dependency
// rules last. Nested errors come back with "name: " message prefixes and
// composed field paths ("address.postalCode", "tags[2]").
func (v *ObjectValidator) Validate(obj map[string]any) Outcome {
	v.seal.mark()

	if obj == nil {
		return Failure(ValidationError{Message: "object cannot be null"}).withMessage(v.message)
	}

	var errs ValidationErrors
	if v.strict {
		var unknown []string
		for name := range obj {
			if _, declared := v.schema[name]; !declared {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			errs.Add(ValidationError{Message: "unknown properties: " + strings.Join(unknown, ", ")})
		}
	}

	for _, name := range v.names {
		value, present := obj[name]
		if !present || isNil(value) {
			if !v.optional[name] {
				errs.Add(ValidationError{Field: name, Message: fmt.Sprintf("%s is required", name)})
			}
			continue
		}

		out := v.schema[name].Validate(value)
		if out.Valid() {
			continue
		}
		for _, err := range out.Errors() {
			errs.Add(ValidationError{
				Field:   joinPath(name, err.Field),
				Message: fmt.Sprintf("%s: %s", name, err.Message),
			})
		}
	}

	for _, rule := range v.rules {
		valueA := resolvePath(obj, rule.PathA)
		valueB := resolvePath(obj, rule.PathB)
		if rule.Predicate(obj, valueA, valueB) {
			continue
		}
		message := rule.Message
		if message == "" {
			message = fmt.Sprintf("%s: dependency between %s and %s is not satisfied", rule.Property, rule.PathA, rule.PathB)
		}
		errs.Add(ValidationError{Field: rule.Property, Message: message})
	}

	if errs.IsEmpty() {
		return Success()
	}
	return Failure(errs...).withMessage(v.message)
}

// ValidateRecord validates a typed record (a struct, a string-keyed map, or
// a Record implementation) by introspecting it through the record boundary
// first. Values that cannot cross the boundary fail with "must be an
// object".
func (v *ObjectValidator) ValidateRecord(rec any) Outcome {
	v.seal.mark()

	if isNil(rec) {
		return Failure(ValidationError{Message: "object cannot be null"}).withMessage(v.message)
	}

	fields, err := RecordFields(unwrapPointers(rec))
	if err != nil {
		return Failure(ValidationError{Message: "must be an object"}).withMessage(v.message)
	}
	return v.Validate(fields)
}

// resolvePath walks a dot-separated path from the record root. Absent
// segments and null values both yield nil, so dependency predicates see
// missing and null the same way. Intermediate values resolve through the
// record boundary, letting paths traverse nested structs as well as maps.
func resolvePath(root map[string]any, path string) any {
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		if isNil(current) {
			return nil
		}

		fields, ok := current.(map[string]any)
		if !ok {
			converted, err := RecordFields(unwrapPointers(current))
			if err != nil {
				return nil
			}
			fields = converted
		}
		current = fields[segment]
	}

	if isNil(current) {
		return nil
	}
	return unwrapPointers(current)
}
