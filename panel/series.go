// Package panel builds one consistent panel dataset out of independently
// sourced indicator time series. Each input series maps (entity, period)
// keys to values for a single indicator; Harmonize aligns them with full
// outer-join semantics and reports coverage gaps instead of hiding them.
package panel

import (
	"fmt"
	"sort"

	"github.com/demostats/panelkit/pkg/errors"
)

// Indicator identifies one measured quantity, such as the fertility rate
// or the female labour-force participation rate.
type Indicator struct {
	// Name is the stable identifier used as the column name in the
	// merged panel. Must be unique across a harmonization call.
	Name string

	// Unit is a human-readable unit, such as "births per woman" or
	// "% of female population ages 15+".
	Unit string
}

// Key identifies one observation slot across all indicators: an entity
// code plus a calendar-year period.
type Key struct {
	Entity string
	Period int
}

// String renders the key as "(USA, 2000)".
func (k Key) String() string {
	return fmt.Sprintf("(%s, %d)", k.Entity, k.Period)
}

// Less orders keys by entity code, then period ascending.
func (k Key) Less(other Key) bool {
	if k.Entity != other.Entity {
		return k.Entity < other.Entity
	}
	return k.Period < other.Period
}

// Value is an explicitly optional observation. Absence is distinguishable
// from a legitimate zero: the zero Value is absent.
type Value struct {
	val     float64
	present bool
}

// Some creates a present Value.
func Some(v float64) Value {
	return Value{val: v, present: true}
}

// Absent creates an explicitly absent Value.
func Absent() Value {
	return Value{}
}

// Present reports whether the value is observed.
func (v Value) Present() bool {
	return v.present
}

// Float64 returns the observed value, or false when absent.
func (v Value) Float64() (float64, bool) {
	return v.val, v.present
}

// String renders the value, or "absent".
func (v Value) String() string {
	if !v.present {
		return "absent"
	}
	return fmt.Sprintf("%g", v.val)
}

// Observation is one raw (entity, period, value) triple used to construct
// an IndicatorSeries.
type Observation struct {
	Entity string
	Period int
	Value  float64
}

// IndicatorSeries holds the observations of a single indicator, keyed by
// (entity, period). It is immutable once constructed; construction fails
// with a SchemaViolationError if two observations share a key.
type IndicatorSeries struct {
	indicator Indicator
	values    map[Key]float64
}

// NewIndicatorSeries validates and builds a series from raw observations.
// A duplicate (entity, period) key is a fatal input error: the source data
// broke its own uniqueness invariant and must be fixed upstream.
func NewIndicatorSeries(indicator Indicator, observations []Observation) (*IndicatorSeries, error) {
	if indicator.Name == "" {
		return nil, errors.NewValidationError("indicator", "name must not be empty", indicator)
	}

	values := make(map[Key]float64, len(observations))
	for _, obs := range observations {
		key := Key{Entity: obs.Entity, Period: obs.Period}
		if _, exists := values[key]; exists {
			return nil, errors.NewSchemaViolation(indicator.Name, obs.Entity, obs.Period, "duplicate key")
		}
		values[key] = obs.Value
	}

	return &IndicatorSeries{indicator: indicator, values: values}, nil
}

// Indicator returns the indicator described by this series.
func (s *IndicatorSeries) Indicator() Indicator {
	return s.indicator
}

// Name returns the indicator name.
func (s *IndicatorSeries) Name() string {
	return s.indicator.Name
}

// Len returns the number of observations.
func (s *IndicatorSeries) Len() int {
	return len(s.values)
}

// Value returns the observation at key, or false when the series has no
// observation there.
func (s *IndicatorSeries) Value(key Key) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the series' keys ordered by entity then period.
func (s *IndicatorSeries) Keys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
