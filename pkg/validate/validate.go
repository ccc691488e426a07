// Package validate provides stateless, composable value validators.
// A validator checks a single value and reports pass/fail plus a
// human-readable reason; it never panics and has no side effects.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator is a stateless pass/fail check. On failure the returned reason
// explains what was wrong; on success the reason is empty.
type Validator interface {
	Validate(value any) (ok bool, reason string)
}

// StringLength checks that a value is a string whose length in characters
// lies within [Min, Max] inclusive. Length counts runes, not bytes.
type StringLength struct {
	Min int
	Max int
}

// Validate implements Validator.
func (v StringLength) Validate(value any) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, "Value must be a string"
	}
	n := utf8.RuneCountInString(s)
	if n < v.Min {
		return false, fmt.Sprintf("Must be at least %d characters", v.Min)
	}
	if n > v.Max {
		return false, fmt.Sprintf("Cannot exceed %d characters", v.Max)
	}
	return true, ""
}

// emailPattern matches the basic local@domain.tld shape. It is a shape
// check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email checks that a value is a string shaped like an email address.
type Email struct{}

// Validate implements Validator.
func (Email) Validate(value any) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, "Email must be a string"
	}
	if !emailPattern.MatchString(s) {
		return false, "Invalid email format"
	}
	return true, ""
}

// Membership checks that a value is one of a fixed set of allowed strings.
type Membership struct {
	Allowed []string
}

// Validate implements Validator.
func (v Membership) Validate(value any) (bool, string) {
	if s, ok := value.(string); ok {
		for _, allowed := range v.Allowed {
			if s == allowed {
				return true, ""
			}
		}
	}
	return false, "Status must be one of: " + strings.Join(v.Allowed, ", ")
}
