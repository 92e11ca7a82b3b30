// Package validation provides the field-keyed validation outcome shared by
// every write operation. A write is validated in two passes, declarative
// field rules first and then cross-field rules, and both sets of failures
// are merged into one Outcome before the caller decides whether to persist.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9().\-\s]{3,}$`)
)

// Outcome collects field-scoped failures for one candidate record. A nil or
// empty Outcome means the candidate is acceptable.
type Outcome struct {
	FieldErrors map[string][]string `json:"errors"`
}

func NewOutcome() *Outcome {
	return &Outcome{FieldErrors: make(map[string][]string)}
}

// Ok reports whether no failure has been recorded.
func (o *Outcome) Ok() bool {
	return o == nil || len(o.FieldErrors) == 0
}

// Add records one failure message against a field.
func (o *Outcome) Add(field, msg string) {
	if o.FieldErrors == nil {
		o.FieldErrors = make(map[string][]string)
	}
	o.FieldErrors[field] = append(o.FieldErrors[field], msg)
}

// Merge folds the failures of other into o. Field order within a key is
// preserved: structural failures first, cross-field failures after.
func (o *Outcome) Merge(other *Outcome) {
	if other == nil {
		return
	}
	for field, msgs := range other.FieldErrors {
		for _, msg := range msgs {
			o.Add(field, msg)
		}
	}
}

// Require records a failure when a mandatory text field is blank.
func (o *Outcome) Require(field, label, value string) {
	if strings.TrimSpace(value) == "" {
		o.Add(field, fmt.Sprintf("%s is required.", label))
	}
}

// Limit records a failure when a text field exceeds max characters.
func (o *Outcome) Limit(field, label, value string, max int) {
	if len(value) > max {
		o.Add(field, fmt.Sprintf("%s must be at most %d characters.", label, max))
	}
}

// Email records a failure when a non-empty value is not email-shaped.
func (o *Outcome) Email(field, label, value string) {
	if value != "" && !emailPattern.MatchString(value) {
		o.Add(field, fmt.Sprintf("%s is not a valid email address.", label))
	}
}

// Phone records a failure when a non-empty value is not phone-shaped.
func (o *Outcome) Phone(field, label, value string) {
	if value != "" && !phonePattern.MatchString(value) {
		o.Add(field, fmt.Sprintf("%s is not a valid phone number.", label))
	}
}

// Range records a failure when a numeric value falls outside [min, max].
func (o *Outcome) Range(field, label string, value, min, max float64) {
	if value < min || value > max {
		o.Add(field, fmt.Sprintf("%s must be between %s and %s.",
			label, formatBound(min), formatBound(max)))
	}
}

// formatBound renders a numeric bound without scientific notation, so a
// million reads 1000000 rather than 1e+06.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round2 normalizes a monetary value to two decimal places, matching the
// fixed scale the bills table stores.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
