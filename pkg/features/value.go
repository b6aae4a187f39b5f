package features

import (
	"encoding/json"
	"math"
)

// Value is an optional scalar statistic. A statistic whose preconditions are
// unmet (too few samples, invalid sampling rate, zero energy) is carried as
// an unavailable Value instead of a raw NaN, so downstream code has to check
// availability before doing arithmetic with it.
type Value struct {
	val float64
	ok  bool
}

// Of wraps a computed scalar. A non-finite input collapses to Unavailable.
func Of(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{val: v, ok: true}
}

// Unavailable is the Value for a statistic that could not be computed.
func Unavailable() Value {
	return Value{}
}

// Valid reports whether the statistic was computed.
func (v Value) Valid() bool {
	return v.ok
}

// Float64 returns the statistic and whether it is available.
func (v Value) Float64() (float64, bool) {
	return v.val, v.ok
}

// Or returns the statistic, or def when unavailable.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.val
}

// MarshalJSON renders unavailable values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.val)
}

// UnmarshalJSON accepts null as unavailable.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}

// MarshalYAML renders unavailable values as null.
func (v Value) MarshalYAML() (any, error) {
	if !v.ok {
		return nil, nil
	}
	return v.val, nil
}
