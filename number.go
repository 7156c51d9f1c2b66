package schemakit

import (
	"fmt"
	"math"
)

// integerEpsilon absorbs float64 representation error when checking
// integrality, so 29.999999999999996 still counts as 30.
const integerEpsilon = 1e-9

// NumberValidator validates float64 values. Unlike the string validator it
// does not short-circuit: every violated rule contributes an error, in the
// fixed order minimum, maximum, integer, non-negative.
//
// Validators combine into new ones with Merge, Union, Intersect, and Negate.
// Combinators never mutate their operands; they return fresh, unsealed
// validators.
type NumberValidator struct {
	seal        seal
	min         *float64
	max         *float64
	integer     bool
	nonNegative bool
	negated     bool
	message     string
}

// Number returns a validator that accepts any float64.
func Number() *NumberValidator {
	return &NumberValidator{}
}

// Min requires the value to be at least n (inclusive). It panics with
// ErrInvalidBounds when n exceeds a configured maximum.
func (v *NumberValidator) Min(n float64) *NumberValidator {
	v.seal.guard()
	if v.max != nil && n > *v.max {
		panic(fmt.Errorf("%w: Min(%v) with Max(%v)", ErrInvalidBounds, n, *v.max))
	}
	v.min = &n
	return v
}

// Max requires the value to be at most n (inclusive). It panics with
// ErrInvalidBounds when n is below a configured minimum.
func (v *NumberValidator) Max(n float64) *NumberValidator {
	v.seal.guard()
	if v.min != nil && n < *v.min {
		panic(fmt.Errorf("%w: Max(%v) with Min(%v)", ErrInvalidBounds, n, *v.min))
	}
	v.max = &n
	return v
}

// Between bounds the value to the inclusive range [min, max].
func (v *NumberValidator) Between(min, max float64) *NumberValidator {
	v.seal.guard()
	if max < min {
		panic(fmt.Errorf("%w: Between(%v, %v)", ErrInvalidBounds, min, max))
	}
	v.min = &min
	v.max = &max
	return v
}

// Integer requires the value to be integral within a small epsilon, so
// values carrying float64 representation error still pass.
func (v *NumberValidator) Integer() *NumberValidator {
	v.seal.guard()
	v.integer = true
	return v
}

// NonNegative requires the value to be zero or greater. It reports its own
// message, distinct from a Min(0) violation.
func (v *NumberValidator) NonNegative() *NumberValidator {
	v.seal.guard()
	v.nonNegative = true
	return v
}

// WithMessage replaces every error this validator produces with msg.
func (v *NumberValidator) WithMessage(msg string) *NumberValidator {
	v.seal.guard()
	v.message = msg
	return v
}

// Merge overlays other onto the receiver: bounds configured on other win,
// flags combine with or, and other's custom message takes precedence. It
// panics with ErrInvalidCombination when either operand is negated.
func (v *NumberValidator) Merge(other *NumberValidator) *NumberValidator {
	if other == nil {
		panic(fmt.Errorf("%w: Merge", ErrNilValidator))
	}
	if v.negated || other.negated {
		panic(fmt.Errorf("%w: Merge", ErrInvalidCombination))
	}

	merged := &NumberValidator{
		min:         cloneBound(v.min),
		max:         cloneBound(v.max),
		integer:     v.integer || other.integer,
		nonNegative: v.nonNegative || other.nonNegative,
		message:     v.message,
	}
	if other.min != nil {
		merged.min = cloneBound(other.min)
	}
	if other.max != nil {
		merged.max = cloneBound(other.max)
	}
	if other.message != "" {
		merged.message = other.message
	}
	return merged
}

// Union widens to the hull of both ranges: the smaller minimum and the
// larger maximum. Values falling in a gap between two disjoint ranges still
// pass, since only the hull survives. Flags must hold on both operands to
// carry over. It panics with ErrInvalidCombination when either operand is
// negated.
func (v *NumberValidator) Union(other *NumberValidator) *NumberValidator {
	if other == nil {
		panic(fmt.Errorf("%w: Union", ErrNilValidator))
	}
	if v.negated || other.negated {
		panic(fmt.Errorf("%w: Union", ErrInvalidCombination))
	}

	united := &NumberValidator{
		integer:     v.integer && other.integer,
		nonNegative: v.nonNegative && other.nonNegative,
		message:     v.message,
	}
	if v.min != nil && other.min != nil {
		united.min = cloneBound(v.min)
		if *other.min < *v.min {
			united.min = cloneBound(other.min)
		}
	}
	if v.max != nil && other.max != nil {
		united.max = cloneBound(v.max)
		if *other.max > *v.max {
			united.max = cloneBound(other.max)
		}
	}
	if united.message == "" {
		united.message = other.message
	}
	return united
}

// Intersect tightens to the overlap of both ranges: the larger minimum and
// the smaller maximum. Disjoint ranges produce an unsatisfiable window that
// fails every value with both bound errors. Flags carry over when either
// operand holds them. It panics with ErrInvalidCombination when either
// operand is negated.
func (v *NumberValidator) Intersect(other *NumberValidator) *NumberValidator {
	if other == nil {
		panic(fmt.Errorf("%w: Intersect", ErrNilValidator))
	}
	if v.negated || other.negated {
		panic(fmt.Errorf("%w: Intersect", ErrInvalidCombination))
	}

	intersected := &NumberValidator{
		min:         cloneBound(v.min),
		max:         cloneBound(v.max),
		integer:     v.integer || other.integer,
		nonNegative: v.nonNegative || other.nonNegative,
		message:     v.message,
	}
	if other.min != nil && (intersected.min == nil || *other.min > *intersected.min) {
		intersected.min = cloneBound(other.min)
	}
	if other.max != nil && (intersected.max == nil || *other.max < *intersected.max) {
		intersected.max = cloneBound(other.max)
	}
	if intersected.message == "" {
		intersected.message = other.message
	}
	return intersected
}

// Negate inverts the range window: values inside [min, max] fail, values
// outside pass. Only the window inverts; Integer and NonNegative still apply
// as configured. Negating twice restores the original window. It panics
// with ErrUnboundedNegate when no bound is set, because the complement of an
// unbounded range accepts nothing.
func (v *NumberValidator) Negate() *NumberValidator {
	if v.min == nil && v.max == nil {
		panic(ErrUnboundedNegate)
	}

	negated := &NumberValidator{
		min:         cloneBound(v.min),
		max:         cloneBound(v.max),
		integer:     v.integer,
		nonNegative: v.nonNegative,
		negated:     !v.negated,
		message:     v.message,
	}
	return negated
}

// Validate checks the value against every configured rule and aggregates
// all violations.
func (v *NumberValidator) Validate(value float64) Outcome {
	v.seal.mark()

	var errs ValidationErrors
	if v.negated {
		if v.insideWindow(value) {
			errs.Add(ValidationError{Message: v.windowMessage()})
		}
	} else {
		if v.min != nil && value < *v.min {
			errs.Add(ValidationError{Message: fmt.Sprintf("must be at least %v", *v.min)})
		}
		if v.max != nil && value > *v.max {
			errs.Add(ValidationError{Message: fmt.Sprintf("must be at most %v", *v.max)})
		}
	}
	if v.integer && !isIntegral(value) {
		errs.Add(ValidationError{Message: "must be an integer"})
	}
	if v.nonNegative && value < 0 {
		errs.Add(ValidationError{Message: "must not be negative"})
	}

	if errs.IsEmpty() {
		return Success()
	}
	return Failure(errs...).withMessage(v.message)
}

func (v *NumberValidator) insideWindow(value float64) bool {
	if v.min != nil && value < *v.min {
		return false
	}
	if v.max != nil && value > *v.max {
		return false
	}
	return true
}

func (v *NumberValidator) windowMessage() string {
	switch {
	case v.min != nil && v.max != nil:
		return fmt.Sprintf("must be outside the range [%v, %v]", *v.min, *v.max)
	case v.min != nil:
		return fmt.Sprintf("must be less than %v", *v.min)
	default:
		return fmt.Sprintf("must be greater than %v", *v.max)
	}
}

func isIntegral(value float64) bool {
	return math.Abs(value-math.Round(value)) <= integerEpsilon
}

func cloneBound(bound *float64) *float64 {
	if bound == nil {
		return nil
	}
	n := *bound
	return &n
}
