package panel

import (
	"testing"

	"github.com/demostats/panelkit/pkg/errors"
)

func TestNewIndicatorSeries(t *testing.T) {
	series, err := NewIndicatorSeries(
		Indicator{Name: "fertility", Unit: "births per woman"},
		[]Observation{
			{Entity: "USA", Period: 2000, Value: 2.1},
			{Entity: "USA", Period: 2001, Value: 2.0},
			{Entity: "FRA", Period: 2000, Value: 1.9},
		},
	)
	if err != nil {
		t.Fatalf("NewIndicatorSeries() error: %v", err)
	}
	if series.Len() != 3 {
		t.Errorf("Len() = %d, want 3", series.Len())
	}
	if v, ok := series.Value(Key{Entity: "FRA", Period: 2000}); !ok || v != 1.9 {
		t.Errorf("Value(FRA, 2000) = (%v, %v), want (1.9, true)", v, ok)
	}
	if _, ok := series.Value(Key{Entity: "DEU", Period: 2000}); ok {
		t.Error("Value(DEU, 2000) reported present for an absent key")
	}

	keys := series.Keys()
	want := []Key{{"FRA", 2000}, {"USA", 2000}, {"USA", 2001}}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], k)
		}
	}
}

func TestNewIndicatorSeriesDuplicateKey(t *testing.T) {
	_, err := NewIndicatorSeries(
		Indicator{Name: "fertility"},
		[]Observation{
			{Entity: "USA", Period: 2000, Value: 2.1},
			{Entity: "USA", Period: 2000, Value: 2.2},
		},
	)
	if err == nil {
		t.Fatal("NewIndicatorSeries() accepted a duplicate (USA, 2000) key")
	}

	var sv *errors.SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("error is %T, want *SchemaViolationError", err)
	}
	if sv.Indicator != "fertility" || sv.Entity != "USA" || sv.Period != 2000 {
		t.Errorf("violation context = %+v, want fertility/(USA, 2000)", sv)
	}
}

func TestNewIndicatorSeriesEmptyName(t *testing.T) {
	_, err := NewIndicatorSeries(Indicator{}, nil)
	if err == nil {
		t.Fatal("NewIndicatorSeries() accepted an empty indicator name")
	}
}

func TestValueZeroDistinguishableFromAbsent(t *testing.T) {
	zero := Some(0.0)
	if !zero.Present() {
		t.Error("Some(0.0).Present() = false; zero must be an observed value")
	}
	if v, ok := zero.Float64(); !ok || v != 0.0 {
		t.Errorf("Some(0.0).Float64() = (%v, %v), want (0, true)", v, ok)
	}

	absent := Absent()
	if absent.Present() {
		t.Error("Absent().Present() = true")
	}
	if absent.String() != "absent" {
		t.Errorf("Absent().String() = %q, want %q", absent.String(), "absent")
	}

	// The zero Value is absent, so uninitialized map reads are safe.
	var zeroValue Value
	if zeroValue.Present() {
		t.Error("zero Value reports present")
	}
}
