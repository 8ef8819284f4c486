package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	gstinPattern   = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	hsnPattern     = regexp.MustCompile(`^\d{4,8}$`)
	acctPattern    = regexp.MustCompile(`^\d{9,18}$`)
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upiPattern     = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,}@[a-zA-Z]{2,}$`)
	pincodePattern = regexp.MustCompile(`^[1-9]\d{5}$`)
)

// FieldError is a single failed check against a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failed check of one validation pass.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

func (e *FieldErrors) add(field, format string, args ...interface{}) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// match records a format failure. Empty values pass; required checks are separate.
func (e *FieldErrors) match(field, value, what string, re *regexp.Regexp) {
	if value == "" || re.MatchString(value) {
		return
	}
	e.add(field, "%q is not a valid %s", value, what)
}

func (e *FieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.add(field, "is required")
	}
}

// wrap attaches the collected problems to a domain sentinel, or returns nil.
func (e FieldErrors) wrap(sentinel error) error {
	if len(e) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, e)
}

// GSTIN reports whether s is a well-formed GSTIN.
func GSTIN(s string) bool { return gstinPattern.MatchString(s) }

// PAN reports whether s is a well-formed PAN.
func PAN(s string) bool { return panPattern.MatchString(s) }

// Mobile reports whether s is a 10-digit Indian mobile number.
func Mobile(s string) bool { return mobilePattern.MatchString(s) }

// Email reports whether s looks like an e-mail address.
func Email(s string) bool { return emailPattern.MatchString(s) }
