package schemakit

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure. Message is
// self-contained: object validators embed property names into the messages
// of nested errors, so Message alone reads correctly without Field.
type ValidationError struct {
	// Field is the dot/bracket path to the offending value, relative to the
	// validator that produced the outcome ("username", "address.postalCode",
	// "tags[2]"). Empty when the error refers to the validated value itself.
	Field string

	// Message is the human-readable description of the failure.
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, err.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// AsValidationErrors extracts ValidationErrors from an error chain.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}

	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs, true
	}
	return nil, false
}

// Outcome is the immutable result of a validation run. The zero value is a
// success; failures are built with Failure and always carry at least one
// error. Outcomes only aggregate, they never panic on bad input values.
type Outcome struct {
	errors ValidationErrors
}

// Success returns a valid outcome with no errors.
func Success() Outcome {
	return Outcome{}
}

// Failure returns an invalid outcome carrying the given errors. It panics
// with ErrEmptyFailure when called without errors.
func Failure(errs ...ValidationError) Outcome {
	if len(errs) == 0 {
		panic(ErrEmptyFailure)
	}

	copied := make(ValidationErrors, len(errs))
	copy(copied, errs)
	return Outcome{errors: copied}
}

func (o Outcome) Valid() bool {
	return len(o.errors) == 0
}

// Errors returns a copy of the aggregated errors, in the deterministic order
// they were produced. Mutating the returned slice does not affect the outcome.
func (o Outcome) Errors() ValidationErrors {
	if len(o.errors) == 0 {
		return nil
	}

	copied := make(ValidationErrors, len(o.errors))
	copy(copied, o.errors)
	return copied
}

// Err returns the aggregated errors as a single error value, or nil when the
// outcome is valid. The result unwraps with AsValidationErrors.
func (o Outcome) Err() error {
	if o.Valid() {
		return nil
	}
	return o.Errors()
}

func (o Outcome) String() string {
	if o.Valid() {
		return "valid"
	}
	return fmt.Sprintf("invalid: %s", o.errors.Error())
}

// withMessage replaces every error message with the configured override
// while keeping field paths intact. Empty overrides are ignored.
func (o Outcome) withMessage(message string) Outcome {
	if message == "" || o.Valid() {
		return o
	}

	overridden := make(ValidationErrors, len(o.errors))
	for i, err := range o.errors {
		err.Message = message
		overridden[i] = err
	}
	return Outcome{errors: overridden}
}
