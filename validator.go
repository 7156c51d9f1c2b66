package schemakit

import (
	"reflect"
	"strings"
	"sync/atomic"
)

// Validator is the contract every validator in the package satisfies.
// Validate inspects a single typed value and reports an Outcome; it must be
// side-effect free and deterministic so repeated calls on the same value
// yield identical outcomes.
type Validator[T any] interface {
	Validate(value T) Outcome
}

// seal freezes a validator's configuration once it has validated a value.
// Configuration methods call guard and panic with ErrSealed afterwards, so a
// validator shared across goroutines never mutates mid-flight.
type seal struct {
	used atomic.Bool
}

func (s *seal) mark() {
	s.used.Store(true)
}

func (s *seal) guard() {
	if s.used.Load() {
		panic(ErrSealed)
	}
}

// joinPath composes a parent path with a child path. Index segments attach
// directly ("tags" + "[2]" = "tags[2]"), named segments join with a dot.
func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case parent == "":
		return child
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}

// isNil reports whether a value is null in the schema sense: the untyped
// nil interface or a typed nil of any nilable kind. Records introspected
// from structs carry typed nils (a *string field, a nil slice), and the
// object layer must treat those exactly like absent properties.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// unwrapPointers dereferences non-nil pointers so the coercion boundary sees
// the pointed-to value. Nil pointers pass through untouched.
func unwrapPointers(value any) any {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Interface()
}
