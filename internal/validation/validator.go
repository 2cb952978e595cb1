// Package validation turns untyped input mappings into typed records
// according to the schema registry.
//
// Validation never stops at the first problem: every failing field is
// collected into a single *ValidationError, in schema order. Input keys that
// the schema does not declare are ignored.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
)

type Validator struct {
	registry *schema.Registry
}

func New(registry *schema.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks input against the schema of kind. It returns
// schema.ErrUnknownKind for unregistered kinds and a *ValidationError when
// any field fails.
func (v *Validator) Validate(kind schema.Kind, input map[string]any) (Record, error) {
	fields, err := v.registry.Lookup(kind)
	if err != nil {
		return Record{}, err
	}

	verr := &ValidationError{Kind: kind}
	rec := Record{
		kind:   kind,
		fields: make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}

	for _, field := range fields {
		rec.fields = append(rec.fields, field.Name)

		raw, present := input[field.Name]
		if !present {
			if field.Required {
				verr.add(field.Name, ReasonMissing, "field is required")
				continue
			}
			rec.values[field.Name] = copyValue(field.Default)
			continue
		}

		if raw == nil {
			switch {
			case field.Required:
				verr.add(field.Name, ReasonMissing, "field is required")
			case !field.Nullable:
				verr.add(field.Name, ReasonType, "must not be null")
			default:
				rec.values[field.Name] = nil
			}
			continue
		}

		value, ok := coerce(field.Type, raw)
		if !ok {
			verr.add(field.Name, ReasonType, typeMessage(field.Type))
			continue
		}

		if checkConstraints(verr, field, value) {
			rec.values[field.Name] = value
		}
	}

	if len(verr.Errors) > 0 {
		return Record{}, verr
	}
	return rec, nil
}

// checkConstraints records every violated constraint and reports whether the
// value passed all of them.
func checkConstraints(verr *ValidationError, field schema.Field, value any) bool {
	passed := true
	for _, c := range field.Constraints {
		switch c.Type {
		case schema.ConstraintMin:
			bound, _ := c.Value.(float64)
			if n, ok := number(value); ok && n < bound {
				verr.add(field.Name, ReasonOutOfRange, "must be greater than or equal to "+formatBound(bound))
				passed = false
			}
		case schema.ConstraintMax:
			bound, _ := c.Value.(float64)
			if n, ok := number(value); ok && n > bound {
				verr.add(field.Name, ReasonOutOfRange, "must be less than or equal to "+formatBound(bound))
				passed = false
			}
		case schema.ConstraintOneOf:
			allowed, _ := c.Value.([]string)
			s, _ := value.(string)
			if !contains(allowed, s) {
				verr.add(field.Name, ReasonEnum, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
				passed = false
			}
		case schema.ConstraintNotEmpty:
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				verr.add(field.Name, ReasonEmpty, "must not be empty")
				passed = false
			}
		}
	}
	return passed
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func typeMessage(t schema.FieldType) string {
	switch t {
	case schema.FieldTypeText, schema.FieldTypeEnum:
		return "must be a string"
	case schema.FieldTypeInt:
		return "must be an integer"
	case schema.FieldTypeFloat:
		return "must be a number"
	case schema.FieldTypeBool:
		return "must be a boolean"
	case schema.FieldTypeDate:
		return "must be a date in YYYY-MM-DD format"
	case schema.FieldTypeMap:
		return "must be an object"
	}
	return "has an unsupported type"
}
