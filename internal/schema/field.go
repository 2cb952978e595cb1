package schema

// FieldType is the semantic type a field value is coerced to.
type FieldType string

const (
	FieldTypeText  FieldType = "text"
	FieldTypeInt   FieldType = "int"
	FieldTypeFloat FieldType = "float"
	FieldTypeBool  FieldType = "bool"
	FieldTypeDate  FieldType = "date"
	FieldTypeEnum  FieldType = "enum"
	FieldTypeMap   FieldType = "map"
)

// DateLayout is the wire format of date fields.
const DateLayout = "2006-01-02"

// Field describes one schema field.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`

	// Required fields must be present and non-null.
	Required bool `json:"required"`

	// Nullable optional fields accept an explicit null. Optional fields that
	// are not nullable only fall back to Default when absent.
	Nullable bool `json:"nullable"`

	Default     any          `json:"default"`
	Constraints []Constraint `json:"constraints,omitempty"`
	Description string       `json:"description,omitempty"`
}

// AllowedValues returns the enumeration of an enum field, or nil.
func (f Field) AllowedValues() []string {
	for _, c := range f.Constraints {
		if c.Type != ConstraintOneOf {
			continue
		}
		if values, ok := c.Value.([]string); ok {
			out := make([]string, len(values))
			copy(out, values)
			return out
		}
	}
	return nil
}

func (f Field) clone() Field {
	if f.Constraints != nil {
		constraints := make([]Constraint, len(f.Constraints))
		for i, c := range f.Constraints {
			if values, ok := c.Value.([]string); ok {
				c.Value = append([]string(nil), values...)
			}
			constraints[i] = c
		}
		f.Constraints = constraints
	}
	return f
}

func text(name, description string) Field {
	return Field{Name: name, Type: FieldTypeText, Nullable: true, Description: description}
}

func requiredText(name, description string) Field {
	return Field{Name: name, Type: FieldTypeText, Required: true, Description: description}
}
