package schemakit

import (
	"fmt"
	"reflect"
	"strings"
)

// ArrayValidator validates []any values: length bounds, an optional
// uniqueness mode, and an optional per-item validator. Checks run in a fixed
// order (null, lengths, uniqueness, items) and every violation contributes
// to the aggregated outcome, so one pass reports everything.
//
// A nil array is a dedicated failure, distinct from an empty one that merely
// breaks a minimum length.
type ArrayValidator struct {
	seal      seal
	item      *FieldValidator
	minLen    *int
	maxLen    *int
	unique    bool
	uniqueEq  func(a, b any) bool
	uniqueKey func(item any) any
	message   string
}

// Array returns a validator that applies item to every element. A nil item
// validator checks structure only: lengths, uniqueness, and null elements.
func Array(item *FieldValidator) *ArrayValidator {
	return &ArrayValidator{item: item}
}

// MinLength requires at least n items. It panics with ErrNegativeBound for
// negative n and with ErrInvalidBounds when n exceeds a configured maximum.
func (v *ArrayValidator) MinLength(n int) *ArrayValidator {
	v.seal.guard()
	if n < 0 {
		panic(fmt.Errorf("%w: MinLength(%d)", ErrNegativeBound, n))
	}
	if v.maxLen != nil && n > *v.maxLen {
		panic(fmt.Errorf("%w: MinLength(%d) with MaxLength(%d)", ErrInvalidBounds, n, *v.maxLen))
	}
	v.minLen = &n
	return v
}

// MaxLength requires at most n items. It panics with ErrNegativeBound for
// negative n and with ErrInvalidBounds when n is below a configured minimum.
func (v *ArrayValidator) MaxLength(n int) *ArrayValidator {
	v.seal.guard()
	if n < 0 {
		panic(fmt.Errorf("%w: MaxLength(%d)", ErrNegativeBound, n))
	}
	if v.minLen != nil && n < *v.minLen {
		panic(fmt.Errorf("%w: MaxLength(%d) with MinLength(%d)", ErrInvalidBounds, n, *v.minLen))
	}
	v.maxLen = &n
	return v
}

// Unique forbids deeply equal items. Each duplicate is reported once,
// against the earliest item it duplicates. The three uniqueness modes share
// one slot; the most recent assignment wins.
func (v *ArrayValidator) Unique() *ArrayValidator {
	v.seal.guard()
	v.unique = true
	v.uniqueEq = nil
	v.uniqueKey = nil
	return v
}

// UniqueFunc forbids items the given equality function considers equal.
// It panics with ErrNilPredicate when eq is nil.
func (v *ArrayValidator) UniqueFunc(eq func(a, b any) bool) *ArrayValidator {
	v.seal.guard()
	if eq == nil {
		panic(fmt.Errorf("%w: UniqueFunc", ErrNilPredicate))
	}
	v.unique = false
	v.uniqueEq = eq
	v.uniqueKey = nil
	return v
}

// UniqueBy forbids items that map to the same key. Every key shared by more
// than one item is reported as a group carrying the key and all offending
// indexes. It panics with ErrNilPredicate when key is nil.
func (v *ArrayValidator) UniqueBy(key func(item any) any) *ArrayValidator {
	v.seal.guard()
	if key == nil {
		panic(fmt.Errorf("%w: UniqueBy key selector", ErrNilPredicate))
	}
	v.unique = false
	v.uniqueEq = nil
	v.uniqueKey = key
	return v
}

// WithMessage replaces every error this validator produces with msg.
func (v *ArrayValidator) WithMessage(msg string) *ArrayValidator {
	v.seal.guard()
	v.message = msg
	return v
}

// Validate checks the items against every configured rule and aggregates
// all violations. Item errors carry "[i]" index paths and prefixed messages.
func (v *ArrayValidator) Validate(items []any) Outcome {
	v.seal.mark()

	if items == nil {
		return Failure(ValidationError{Message: "array cannot be null"}).withMessage(v.message)
	}

	var errs ValidationErrors
	if v.minLen != nil && len(items) < *v.minLen {
		errs.Add(ValidationError{Message: fmt.Sprintf("must have at least %d items", *v.minLen)})
	}
	if v.maxLen != nil && len(items) > *v.maxLen {
		errs.Add(ValidationError{Message: fmt.Sprintf("must have at most %d items", *v.maxLen)})
	}

	v.checkUniqueness(items, &errs)

	for i, item := range items {
		if isNil(item) {
			errs.Add(ValidationError{
				Field:   fmt.Sprintf("[%d]", i),
				Message: fmt.Sprintf("item at index %d cannot be null", i),
			})
			continue
		}
		if v.item == nil {
			continue
		}

		out := v.item.Validate(item)
		if out.Valid() {
			continue
		}
		prefix := fmt.Sprintf("[%d]", i)
		for _, err := range out.Errors() {
			errs.Add(ValidationError{
				Field:   joinPath(prefix, err.Field),
				Message: fmt.Sprintf("%s: %s", prefix, err.Message),
			})
		}
	}

	if errs.IsEmpty() {
		return Success()
	}
	return Failure(errs...).withMessage(v.message)
}

func (v *ArrayValidator) checkUniqueness(items []any, errs *ValidationErrors) {
	if v.uniqueKey != nil {
		v.checkUniqueKeys(items, errs)
		return
	}

	eq := v.uniqueEq
	if v.unique {
		eq = reflect.DeepEqual
	}
	if eq == nil {
		return
	}

	reported := make([]bool, len(items))
	for i := 0; i < len(items); i++ {
		if reported[i] {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			if reported[j] || !eq(items[i], items[j]) {
				continue
			}
			reported[j] = true
			errs.Add(ValidationError{
				Field:   fmt.Sprintf("[%d]", j),
				Message: fmt.Sprintf("item at index %d is a duplicate of item at index %d", j, i),
			})
		}
	}
}

// checkUniqueKeys groups items by selector key in first-occurrence order.
// Keys compare with reflect.DeepEqual so uncomparable key types cannot
// panic a validation run.
func (v *ArrayValidator) checkUniqueKeys(items []any, errs *ValidationErrors) {
	type keyGroup struct {
		key     any
		indexes []int
	}
	var groups []keyGroup

grouping:
	for i, item := range items {
		key := v.uniqueKey(item)
		for gi := range groups {
			if reflect.DeepEqual(groups[gi].key, key) {
				groups[gi].indexes = append(groups[gi].indexes, i)
				continue grouping
			}
		}
		groups = append(groups, keyGroup{key: key, indexes: []int{i}})
	}

	for _, group := range groups {
		if len(group.indexes) < 2 {
			continue
		}
		errs.Add(ValidationError{
			Message: fmt.Sprintf("duplicate key %v shared by items at indexes %s", group.key, formatIndexes(group.indexes)),
		})
	}
}

func formatIndexes(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ", ")
}
