package schema

// ConstraintType identifies the type of constraint.
type ConstraintType string

const (
	ConstraintMin      ConstraintType = "min"       // inclusive numeric lower bound
	ConstraintMax      ConstraintType = "max"       // inclusive numeric upper bound
	ConstraintOneOf    ConstraintType = "one_of"    // value must be one of []string
	ConstraintNotEmpty ConstraintType = "not_empty" // string must not be blank
)

// Constraint defines a validation rule for a field. Value is a float64 for
// min and max, a []string for one_of, and unused for not_empty.
type Constraint struct {
	Type  ConstraintType `json:"type"`
	Value any            `json:"value,omitempty"`
}

func Min(v float64) Constraint {
	return Constraint{Type: ConstraintMin, Value: v}
}

func Max(v float64) Constraint {
	return Constraint{Type: ConstraintMax, Value: v}
}

func OneOf(values ...string) Constraint {
	return Constraint{Type: ConstraintOneOf, Value: values}
}

func NotEmpty() Constraint {
	return Constraint{Type: ConstraintNotEmpty}
}
