package schemakit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Kind identifies the runtime shape a field validator expects at the
// coercion boundary.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindDate
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

func (k Kind) coercionMessage() string {
	switch k {
	case KindArray, KindObject:
		return "must be an " + k.String()
	default:
		return "must be a " + k.String()
	}
}

// dateLayouts are tried in order when coercing strings to dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FieldValidator adapts a typed validator to untyped input. It is the only
// place in the package where representation conversion happens: input is
// coerced to the wrapped validator's kind exactly once, and a value that
// cannot be coerced fails with a single "must be a {kind}" error without
// ever invoking the wrapped validator.
type FieldValidator struct {
	seal    seal
	kind    Kind
	run     func(any) Outcome
	message string
}

// Field wraps a typed validator for use in a Schema. The kind is inferred
// from the validator's value type; wrapping a validator for any other type
// panics with ErrUnsupportedType.
func Field[T any](v Validator[T]) *FieldValidator {
	if v == nil {
		panic(fmt.Errorf("%w: Field", ErrNilValidator))
	}

	var zero T
	kind, ok := kindOf(any(zero))
	if !ok {
		panic(fmt.Errorf("%w: %T", ErrUnsupportedType, zero))
	}

	return &FieldValidator{
		kind: kind,
		run: func(value any) Outcome {
			return v.Validate(value.(T))
		},
	}
}

// Kind reports the runtime shape this field expects.
func (v *FieldValidator) Kind() Kind {
	return v.kind
}

// WithMessage replaces every error this field produces, including coercion
// failures and errors from the wrapped validator. Field paths survive the
// override.
func (v *FieldValidator) WithMessage(msg string) *FieldValidator {
	v.seal.guard()
	v.message = msg
	return v
}

// Validate coerces the value to the expected kind and delegates to the
// wrapped validator. Unsuitable input never panics, it fails the outcome.
func (v *FieldValidator) Validate(value any) Outcome {
	v.seal.mark()

	coerced, ok := coerce(v.kind, value)
	if !ok {
		return Failure(ValidationError{Message: v.kind.coercionMessage()}).withMessage(v.message)
	}
	return v.run(coerced).withMessage(v.message)
}

func kindOf(zero any) (Kind, bool) {
	switch zero.(type) {
	case string:
		return KindString, true
	case float64:
		return KindNumber, true
	case bool:
		return KindBool, true
	case time.Time:
		return KindDate, true
	case []any:
		return KindArray, true
	case map[string]any:
		return KindObject, true
	}
	return 0, false
}

func coerce(kind Kind, value any) (any, bool) {
	value = unwrapPointers(value)

	switch kind {
	case KindString:
		s, ok := value.(string)
		return s, ok
	case KindNumber:
		return coerceNumber(value)
	case KindBool:
		b, ok := value.(bool)
		return b, ok
	case KindDate:
		return coerceDate(value)
	case KindArray:
		return coerceArray(value)
	case KindObject:
		return coerceObject(value)
	}
	return nil, false
}

// coerceNumber widens Go's numeric types to float64. Strings and booleans
// never coerce: "30" and true are not numbers.
func coerceNumber(value any) (any, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func coerceDate(value any) (any, bool) {
	switch d := value.(type) {
	case time.Time:
		return d, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, true
			}
		}
	}
	return nil, false
}

// coerceArray materializes any slice or array into []any. Typed nil slices
// stay nil so the array validator reports its dedicated null error instead
// of a type mismatch.
func coerceArray(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	if vs, ok := value.([]any); ok {
		return vs, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return []any(nil), true
		}
	case reflect.Array:
	case reflect.Pointer:
		if rv.IsNil() && rv.Type().Elem().Kind() == reflect.Slice {
			return []any(nil), true
		}
		return nil, false
	default:
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// coerceObject routes structured values through the record boundary. Typed
// nil maps and nil struct pointers stay nil so the object validator reports
// its dedicated null error.
func coerceObject(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	if m, ok := value.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() && rv.Type().Key().Kind() == reflect.String {
			return map[string]any(nil), true
		}
	case reflect.Pointer:
		if rv.IsNil() {
			if rv.Type().Elem().Kind() == reflect.Struct {
				return map[string]any(nil), true
			}
			return nil, false
		}
	}

	fields, err := RecordFields(value)
	if err != nil {
		return nil, false
	}
	return fields, true
}
