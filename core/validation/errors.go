// Package validation holds the error shape shared by the record validators.
package validation

import (
	"fmt"
	"strings"
)

const (
	RuleRequired    = "required"
	RuleFormat      = "format"
	RuleNotFuture   = "not_future"
	RuleNonNegative = "non_negative"
)

// Error names the first field that failed and the rule it broke.
type Error struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (e *Error) Error() string {
	switch e.Rule {
	case RuleRequired:
		return e.Field + " is required"
	case RuleNotFuture:
		return e.Field + " must not be later than the current time"
	case RuleNonNegative:
		return e.Field + " must not be negative"
	case RuleFormat:
		return e.Field + " has an invalid format"
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Rule)
}

// Field is one named value checked by RequireAll.
type Field struct {
	Name  string
	Value string
}

// RequireAll returns an Error for the first blank field, in order.
func RequireAll(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &Error{Field: f.Name, Rule: RuleRequired}
		}
	}
	return nil
}
