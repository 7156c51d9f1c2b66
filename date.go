package schemakit

import (
	"fmt"
	"time"
)

// dateFormat renders bound violations in messages.
const dateFormat = "2006-01-02"

// DateValidator validates time.Time values. Bounds are inclusive and
// compared by instant, so time zones are honored rather than stripped.
// Violations aggregate like the number validator's.
type DateValidator struct {
	seal    seal
	min     *time.Time
	max     *time.Time
	message string
}

// Date returns a validator that accepts any time.Time.
func Date() *DateValidator {
	return &DateValidator{}
}

// Min requires the value to be on or after t. It panics with
// ErrInvalidBounds when t is after a configured maximum.
func (v *DateValidator) Min(t time.Time) *DateValidator {
	v.seal.guard()
	if v.max != nil && t.After(*v.max) {
		panic(fmt.Errorf("%w: Min(%s) with Max(%s)", ErrInvalidBounds, t.Format(dateFormat), v.max.Format(dateFormat)))
	}
	v.min = &t
	return v
}

// Max requires the value to be on or before t. It panics with
// ErrInvalidBounds when t is before a configured minimum.
func (v *DateValidator) Max(t time.Time) *DateValidator {
	v.seal.guard()
	if v.min != nil && t.Before(*v.min) {
		panic(fmt.Errorf("%w: Max(%s) with Min(%s)", ErrInvalidBounds, t.Format(dateFormat), v.min.Format(dateFormat)))
	}
	v.max = &t
	return v
}

// Between bounds the value to the inclusive range [start, end].
func (v *DateValidator) Between(start, end time.Time) *DateValidator {
	v.seal.guard()
	if end.Before(start) {
		panic(fmt.Errorf("%w: Between(%s, %s)", ErrInvalidBounds, start.Format(dateFormat), end.Format(dateFormat)))
	}
	v.min = &start
	v.max = &end
	return v
}

// WithMessage replaces every error this validator produces with msg.
func (v *DateValidator) WithMessage(msg string) *DateValidator {
	v.seal.guard()
	v.message = msg
	return v
}

func (v *DateValidator) Validate(value time.Time) Outcome {
	v.seal.mark()

	var errs ValidationErrors
	if v.min != nil && value.Before(*v.min) {
		errs.Add(ValidationError{Message: fmt.Sprintf("must not be before %s", v.min.Format(dateFormat))})
	}
	if v.max != nil && value.After(*v.max) {
		errs.Add(ValidationError{Message: fmt.Sprintf("must not be after %s", v.max.Format(dateFormat))})
	}

	if errs.IsEmpty() {
		return Success()
	}
	return Failure(errs...).withMessage(v.message)
}
