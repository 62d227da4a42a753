package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// Map returns the accumulated errors keyed by field.
// When a field failed more than once, the first message is kept.
func (c *Collector) Map() map[string]string {
	m := make(map[string]string, len(c.errors))
	for _, e := range c.errors {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateNoNullBytes returns an error if the value contains null bytes.
func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.Contains(value, "\x00") {
		return &ValidationError{
			Field:   field,
			Message: "must not contain null bytes",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateEnum returns an error if the value is not in the allowed list.
// Matching is exact and case-sensitive.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Amount bounds: a DECIMAL(20,6) column holds at most 14 integer digits and
// 6 fractional digits.
const (
	MaxIntegerDigits  = 14
	MaxFractionDigits = 6
)

var maxAmount = decimal.New(1, MaxIntegerDigits)

// parseAmount parses a plain decimal literal that a DECIMAL(20,6) column
// stores exactly. Exponent notation is refused.
func parseAmount(value string) (decimal.Decimal, bool) {
	if strings.ContainsAny(value, "eE") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	if !d.Abs().LessThan(maxAmount) || !d.Truncate(MaxFractionDigits).Equal(d) {
		return decimal.Zero, false
	}
	return d, true
}

// ValidatePositiveDecimal parses value as a decimal strictly greater than zero.
func ValidatePositiveDecimal(field, value string) (decimal.Decimal, *ValidationError) {
	d, ok := parseAmount(value)
	if !ok || !d.IsPositive() {
		return decimal.Zero, &ValidationError{
			Field:   field,
			Message: "must be a valid positive number",
		}
	}
	return d, nil
}

// ValidateNonNegativeDecimal parses value as a decimal greater than or equal to zero.
func ValidateNonNegativeDecimal(field, value string) (decimal.Decimal, *ValidationError) {
	d, ok := parseAmount(value)
	if !ok || d.IsNegative() {
		return decimal.Zero, &ValidationError{
			Field:   field,
			Message: "must be a valid number",
		}
	}
	return d, nil
}
