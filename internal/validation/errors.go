package validation

import (
	"fmt"
	"strings"

	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
)

const (
	ReasonMissing    = "missing"
	ReasonType       = "type"
	ReasonOutOfRange = "out_of_range"
	ReasonEnum       = "enum"
	ReasonEmpty      = "empty"
)

// FieldError is one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every field that failed, in schema order.
type ValidationError struct {
	Kind   schema.Kind
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(msgs, "; "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	return e.Reason(field) != ""
}

// Reason returns the reason field failed, or "" when it did not.
func (e *ValidationError) Reason(field string) string {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Reason
		}
	}
	return ""
}

func (e *ValidationError) add(field, reason, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Reason: reason, Message: message})
}
