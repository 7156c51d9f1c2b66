package schemakit

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	// Phone number regex - international format with optional country code
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// StringValidator validates string values. Length bounds, the pattern slot,
// and the custom message accumulate through the fluent methods; pattern and
// the format presets share one slot, so the most recent assignment wins.
//
// Blank strings (empty after trimming whitespace) pass unless a minimum
// length is configured or a custom message marks the field as meaningful.
// Rules short-circuit in a fixed order (minimum length, maximum length,
// pattern), so a string outcome carries at most one error.
type StringValidator struct {
	seal         seal
	minLen       *int
	maxLen       *int
	match        func(string) bool
	matchMessage string
	message      string
}

// String returns a validator that accepts any string.
func String() *StringValidator {
	return &StringValidator{}
}

// MinLength requires at least n characters. It panics with ErrNegativeBound
// for negative n and with ErrInvalidBounds when n exceeds a configured
// maximum length.
func (v *StringValidator) MinLength(n int) *StringValidator {
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

// MaxLength requires at most n characters. It panics with ErrNegativeBound
// for negative n and with ErrInvalidBounds when n is below a configured
// minimum length.
func (v *StringValidator) MaxLength(n int) *StringValidator {
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

// Pattern requires the value to match the given regular expression. It
// panics when expr does not compile.
func (v *StringValidator) Pattern(expr string) *StringValidator {
	v.seal.guard()
	re := regexp.MustCompile(expr)
	v.match = re.MatchString
	v.matchMessage = fmt.Sprintf(`must match pattern "%s"`, expr)
	return v
}

// Email requires the value to be an email address usable on the web: it must
// parse under RFC 5322 and carry a dotted domain.
func (v *StringValidator) Email() *StringValidator {
	v.seal.guard()
	v.match = isEmailAddress
	v.matchMessage = "must be a valid email address"
	return v
}

// PhoneNumber requires an international phone number. Spaces and dashes are
// ignored, the remaining digits must satisfy E.164.
func (v *StringValidator) PhoneNumber() *StringValidator {
	v.seal.guard()
	v.match = isPhoneNumber
	v.matchMessage = "must be a valid phone number in international format"
	return v
}

// UUID requires a canonical 36-character UUID.
func (v *StringValidator) UUID() *StringValidator {
	v.seal.guard()
	v.match = isCanonicalUUID
	v.matchMessage = "must be a valid UUID"
	return v
}

// URL requires an absolute URL with a scheme and host.
func (v *StringValidator) URL() *StringValidator {
	v.seal.guard()
	v.match = isAbsoluteURL
	v.matchMessage = "must be a valid URL"
	return v
}

// CurrencyCode requires an ISO 4217 currency code. Lowercase input is
// accepted and checked against the canonical uppercase code.
func (v *StringValidator) CurrencyCode() *StringValidator {
	v.seal.guard()
	v.match = isCurrencyCode
	v.matchMessage = "must be a valid ISO 4217 currency code"
	return v
}

// LanguageTag requires a well-formed BCP 47 language tag such as "en-US".
func (v *StringValidator) LanguageTag() *StringValidator {
	v.seal.guard()
	v.match = isLanguageTag
	v.matchMessage = "must be a valid BCP 47 language tag"
	return v
}

// WithMessage replaces every error this validator produces with msg. Setting
// it also makes blank strings fail, since a custom message marks the value
// as meaningful to the caller.
func (v *StringValidator) WithMessage(msg string) *StringValidator {
	v.seal.guard()
	v.message = msg
	return v
}

// Validate checks the value against the configured rules. The first
// violation in the fixed order wins; later rules are not evaluated.
func (v *StringValidator) Validate(value string) Outcome {
	v.seal.mark()

	if strings.TrimSpace(value) == "" {
		if v.minLen != nil && *v.minLen > 0 {
			return v.fail(fmt.Sprintf("must be at least %d characters long", *v.minLen))
		}
		if v.message != "" {
			return Failure(ValidationError{Message: v.message})
		}
		return Success()
	}

	if v.minLen != nil && len(value) < *v.minLen {
		return v.fail(fmt.Sprintf("must be at least %d characters long", *v.minLen))
	}
	if v.maxLen != nil && len(value) > *v.maxLen {
		return v.fail(fmt.Sprintf("must be at most %d characters long", *v.maxLen))
	}
	if v.match != nil && !v.match(value) {
		return v.fail(v.matchMessage)
	}
	return Success()
}

func (v *StringValidator) fail(msg string) Outcome {
	if v.message != "" {
		msg = v.message
	}
	return Failure(ValidationError{Message: msg})
}

func isEmailAddress(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// Additional validation for typical web use
	email := addr.Address
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}

	localPart := parts[0]
	domain := parts[1]

	if localPart == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}

func isPhoneNumber(value string) bool {
	// Remove spaces and dashes for validation
	cleaned := strings.ReplaceAll(strings.ReplaceAll(value, " ", ""), "-", "")

	// Must be at least 7 digits (minimum valid phone number)
	if len(cleaned) < 7 {
		return false
	}

	return phoneRegex.MatchString(cleaned)
}

func isCanonicalUUID(value string) bool {
	// Fast rejection: check length and hyphen positions before parsing
	if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}

	_, err := uuid.Parse(value)
	return err == nil
}

func isAbsoluteURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isCurrencyCode(value string) bool {
	if len(value) != 3 {
		return false
	}
	_, err := currency.ParseISO(strings.ToUpper(value))
	return err == nil
}

func isLanguageTag(value string) bool {
	_, err := language.Parse(value)
	return err == nil
}
