package domain

import (
	"encoding/json"
	"math"
)

// Attribute names used by the skill.
const (
	AttrLastIntent       = "lastIntent"
	AttrLastSpeech       = "lastSpeech"
	AttrTotalLaunchCount = "totalLaunchCount"
	AttrName             = "name"
	AttrLastUseTimestamp = "lastUseTimestamp"
)

// Attributes is the flat attribute bag kept per invocation and persisted per
// user. Values are string, int64, float64, bool or nil.
type Attributes map[string]any

// Get returns the raw value stored under name. A key holding nil is reported
// as present.
func (a Attributes) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Set stores value under name.
func (a Attributes) Set(name string, value any) {
	a[name] = normalizeValue(value)
}

// String returns the string stored under name. Absent, nil and non-string
// values report false.
func (a Attributes) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// Int returns the integer stored under name, or 0 when absent or not numeric.
func (a Attributes) Int(name string) int64 {
	switch v := a[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Clone returns a shallow copy. Values are scalars so this is a full copy.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// NormalizeAttributes converts values decoded from JSON (float64, json.Number)
// into the bag's value set, turning integral numbers into int64.
func NormalizeAttributes(in map[string]any) Attributes {
	out := make(Attributes, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	default:
		return v
	}
}
