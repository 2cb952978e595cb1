package validation

import (
	"time"

	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
)

// Record is a validated record. Values are coerced to int64, float64,
// bool, string, time.Time (dates) or map[string]any; absent optional
// fields without a default hold nil. A Record is never modified after
// Validate returns it.
type Record struct {
	kind   schema.Kind
	fields []string
	values map[string]any
}

func (r Record) Kind() schema.Kind {
	return r.kind
}

// Get returns the value of field and whether the schema declares it.
func (r Record) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return copyValue(v), ok
}

// Fields returns the field names in schema order.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Values returns a copy of the typed values keyed by field name.
func (r Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = copyValue(v)
	}
	return out
}

// Document serializes the record into a storage-neutral mapping. Every
// schema field is present; fields without a value are explicit nulls and
// dates are rendered with schema.DateLayout.
func (r Record) Document() map[string]any {
	doc := make(map[string]any, len(r.values))
	for k, v := range r.values {
		if t, ok := v.(time.Time); ok {
			doc[k] = t.Format(schema.DateLayout)
			continue
		}
		doc[k] = copyValue(v)
	}
	return doc
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
