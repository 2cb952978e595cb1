package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
)

func coerce(t schema.FieldType, v any) (any, bool) {
	switch t {
	case schema.FieldTypeText, schema.FieldTypeEnum:
		s, ok := v.(string)
		return s, ok
	case schema.FieldTypeInt:
		return toInt(v)
	case schema.FieldTypeFloat:
		return toFloat(v)
	case schema.FieldTypeBool:
		return toBool(v)
	case schema.FieldTypeDate:
		return toDate(v)
	case schema.FieldTypeMap:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		return copyValue(m), true
	}
	return nil, false
}

func toInt(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return integral(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil, false
		}
		return i, true
	}
	return nil, false
}

func integral(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

func toFloat(v any) (any, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func toBool(v any) (any, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on", "t", "y":
			return true, true
		case "false", "0", "no", "off", "f", "n":
			return false, true
		}
		return nil, false
	}

	i, ok := toInt(v)
	if !ok {
		return nil, false
	}
	switch i.(int64) {
	case 0:
		return false, true
	case 1:
		return true, true
	}
	return nil, false
}

func toDate(v any) (any, bool) {
	switch d := v.(type) {
	case time.Time:
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
	case string:
		t, err := time.Parse(schema.DateLayout, strings.TrimSpace(d))
		if err != nil {
			return nil, false
		}
		return t, true
	}
	return nil, false
}
