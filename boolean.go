package schemakit

// BoolValidator validates bool values. A typed boolean is always valid, so
// its real work happens at the coercion boundary, where non-boolean input is
// rejected before it ever reaches Validate.
type BoolValidator struct {
	seal    seal
	message string
}

// Boolean returns a validator that accepts any bool.
func Boolean() *BoolValidator {
	return &BoolValidator{}
}

// WithMessage sets the custom message. Kept for API uniformity; the bool
// validator has no failing path of its own.
func (v *BoolValidator) WithMessage(msg string) *BoolValidator {
	v.seal.guard()
	v.message = msg
	return v
}

func (v *BoolValidator) Validate(value bool) Outcome {
	v.seal.mark()
	return Success()
}
