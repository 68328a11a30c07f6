package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timestamp returns the raw timestamp string of the record, or "" when absent.
func (r Record) Timestamp() string {
	s, _ := r[TimestampField].(string)
	return s
}

// Time parses the record timestamp in loc.
// It reports false when the field is absent or does not match TimestampLayout.
func (r Record) Time(loc *time.Location) (time.Time, bool) {
	s := r.Timestamp()
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Float returns the numeric value stored under key.
// Numeric strings are coerced; anything else reports false.
func (r Record) Float(key string) (float64, bool) {
	return ToFloat(r[key])
}

// FloatOrZero returns the numeric value under key, substituting 0 when absent or non-numeric.
func (r Record) FloatOrZero(key string) float64 {
	v, _ := r.Float(key)
	return v
}

// ToFloat coerces a decoded JSON, SQL or Parquet value to float64.
// NaN and infinities are rejected like any other non-numeric value.
func ToFloat(v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	default:
		return 0, false
	}
}
