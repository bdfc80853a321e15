package panel

import (
	"reflect"
	"testing"

	"github.com/demostats/panelkit/country"
	"github.com/demostats/panelkit/pkg/errors"
	"github.com/demostats/panelkit/pkg/log"
)

func mustSeries(t *testing.T, name string, obs []Observation) *IndicatorSeries {
	t.Helper()
	s, err := NewIndicatorSeries(Indicator{Name: name}, obs)
	if err != nil {
		t.Fatalf("NewIndicatorSeries(%s) error: %v", name, err)
	}
	return s
}

func TestHarmonizeOuterJoin(t *testing.T) {
	fertility := mustSeries(t, "fertility", []Observation{
		{Entity: "USA", Period: 2000, Value: 2.1},
	})
	labour := mustSeries(t, "labour", []Observation{
		{Entity: "USA", Period: 2000, Value: 60.5},
		{Entity: "FRA", Period: 2000, Value: 48.2},
	})

	p, report, err := Harmonize([]*IndicatorSeries{fertility, labour})
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}

	if p.Len() != 2 {
		t.Fatalf("row count = %d, want 2 (size of key union)", p.Len())
	}

	// Ordered by entity code then period: FRA before USA.
	fra := p.Row(0)
	if fra.Entity != "FRA" || fra.Period != 2000 {
		t.Fatalf("row 0 = (%s, %d), want (FRA, 2000)", fra.Entity, fra.Period)
	}
	if fra.Value("fertility").Present() {
		t.Error("fertility at (FRA, 2000) should be explicitly absent")
	}
	if v, ok := fra.Value("labour").Float64(); !ok || v != 48.2 {
		t.Errorf("labour at (FRA, 2000) = (%v, %v), want (48.2, true)", v, ok)
	}

	usa := p.Row(1)
	if v, ok := usa.Value("fertility").Float64(); !ok || v != 2.1 {
		t.Errorf("fertility at (USA, 2000) = (%v, %v), want (2.1, true)", v, ok)
	}
	if v, ok := usa.Value("labour").Float64(); !ok || v != 60.5 {
		t.Errorf("labour at (USA, 2000) = (%v, %v), want (60.5, true)", v, ok)
	}

	wantMissing := []Key{{Entity: "FRA", Period: 2000}}
	if got := report.Indicator("fertility").Missing; !reflect.DeepEqual(got, wantMissing) {
		t.Errorf("fertility missing = %v, want %v", got, wantMissing)
	}
	if got := report.Indicator("labour").Count(); got != 0 {
		t.Errorf("labour missing count = %d, want 0", got)
	}
}

func TestHarmonizeRowCountEqualsKeyUnion(t *testing.T) {
	a := mustSeries(t, "a", []Observation{
		{Entity: "USA", Period: 2000, Value: 1},
		{Entity: "USA", Period: 2001, Value: 2},
		{Entity: "FRA", Period: 2000, Value: 3},
	})
	b := mustSeries(t, "b", []Observation{
		{Entity: "USA", Period: 2000, Value: 4},
		{Entity: "DEU", Period: 1999, Value: 5},
	})
	c := mustSeries(t, "c", nil)

	p, _, err := Harmonize([]*IndicatorSeries{a, b, c})
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}
	// Union: (USA,2000) (USA,2001) (FRA,2000) (DEU,1999)
	if p.Len() != 4 {
		t.Errorf("row count = %d, want 4", p.Len())
	}

	// Every row carries an entry for every indicator.
	for _, row := range p.Rows() {
		if len(row.Values) != 3 {
			t.Errorf("row %v has %d values, want 3", row.Key(), len(row.Values))
		}
	}
}

func TestHarmonizeIdempotent(t *testing.T) {
	series := func() []*IndicatorSeries {
		return []*IndicatorSeries{
			mustSeries(t, "fertility", []Observation{
				{Entity: "USA", Period: 2000, Value: 2.1},
				{Entity: "FRA", Period: 2001, Value: 1.8},
				{Entity: "JPN", Period: 2000, Value: 1.3},
			}),
			mustSeries(t, "urbanization", []Observation{
				{Entity: "JPN", Period: 2000, Value: 78.6},
				{Entity: "USA", Period: 2001, Value: 79.1},
			}),
		}
	}

	p1, r1, err := Harmonize(series())
	if err != nil {
		t.Fatalf("first Harmonize() error: %v", err)
	}
	p2, r2, err := Harmonize(series())
	if err != nil {
		t.Fatalf("second Harmonize() error: %v", err)
	}

	if !reflect.DeepEqual(p1.Rows(), p2.Rows()) {
		t.Error("two harmonizations of the same inputs produced different rows")
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("two harmonizations of the same inputs produced different reports")
	}
}

func TestHarmonizeRoundTripExactness(t *testing.T) {
	// Values must survive the merge bit-for-bit, including awkward ones.
	obs := []Observation{
		{Entity: "USA", Period: 2000, Value: 0.1 + 0.2},
		{Entity: "FRA", Period: 2000, Value: 0},
		{Entity: "JPN", Period: 2000, Value: -3.75e-17},
	}
	s := mustSeries(t, "net_migration", obs)

	p, _, err := Harmonize([]*IndicatorSeries{s})
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}
	for _, o := range obs {
		row := findRow(t, p, o.Entity, o.Period)
		got, ok := row.Value("net_migration").Float64()
		if !ok || got != o.Value {
			t.Errorf("value at (%s, %d) = (%v, %v), want exactly (%v, true)", o.Entity, o.Period, got, ok, o.Value)
		}
	}
}

func TestHarmonizeZeroNotAbsent(t *testing.T) {
	a := mustSeries(t, "a", []Observation{{Entity: "USA", Period: 2000, Value: 0}})
	b := mustSeries(t, "b", []Observation{{Entity: "FRA", Period: 2000, Value: 1}})

	p, report, err := Harmonize([]*IndicatorSeries{a, b})
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}

	usa := findRow(t, p, "USA", 2000)
	if v := usa.Value("a"); !v.Present() {
		t.Error("observed zero at (USA, 2000) reported absent")
	}
	// The zero is an observation, so it is not a coverage gap for "a".
	for _, k := range report.Indicator("a").Missing {
		if k.Entity == "USA" && k.Period == 2000 {
			t.Error("observed zero at (USA, 2000) listed as missing")
		}
	}
}

func TestHarmonizeEmptyInput(t *testing.T) {
	p, report, err := Harmonize(nil)
	if err != nil {
		t.Fatalf("Harmonize(nil) error: %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("row count = %d, want 0", p.Len())
	}
	if report.TotalMissing() != 0 {
		t.Errorf("TotalMissing() = %d, want 0", report.TotalMissing())
	}
}

func TestHarmonizeDuplicateIndicatorName(t *testing.T) {
	a := mustSeries(t, "fertility", []Observation{{Entity: "USA", Period: 2000, Value: 1}})
	b := mustSeries(t, "fertility", []Observation{{Entity: "FRA", Period: 2000, Value: 2}})

	_, _, err := Harmonize([]*IndicatorSeries{a, b})
	var sv *errors.SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("error is %T (%v), want *SchemaViolationError", err, err)
	}
}

func TestHarmonizeAliasResolution(t *testing.T) {
	fertility := mustSeries(t, "fertility", []Observation{
		{Entity: "Turkey", Period: 2010, Value: 2.08},
	})
	labour := mustSeries(t, "labour", []Observation{
		{Entity: "Türkiye", Period: 2010, Value: 27.6},
	})

	p, report, err := Harmonize(
		[]*IndicatorSeries{fertility, labour},
		WithAliases(country.NewAliasMap()),
	)
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}

	// Both spellings canonicalize to the same entity, so there is exactly
	// one fully covered row.
	if p.Len() != 1 {
		t.Fatalf("row count = %d, want 1", p.Len())
	}
	row := p.Row(0)
	if row.Entity != "Turkey" {
		t.Errorf("entity = %q, want %q", row.Entity, "Turkey")
	}
	if report.TotalMissing() != 0 {
		t.Errorf("TotalMissing() = %d, want 0", report.TotalMissing())
	}
}

func TestHarmonizeUnresolvedAliasLenient(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	s := mustSeries(t, "fertility", []Observation{
		{Entity: "Atlantis", Period: 2000, Value: 1.0},
		{Entity: "Egypt, Arab Rep.", Period: 2000, Value: 3.3},
	})

	p, report, err := Harmonize(
		[]*IndicatorSeries{s},
		WithAliases(country.NewAliasMap()),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}

	// The unresolved name is kept as a distinct entity, not dropped.
	if p.Len() != 2 {
		t.Fatalf("row count = %d, want 2", p.Len())
	}
	if len(report.Unresolved) != 1 {
		t.Fatalf("unresolved count = %d, want 1", len(report.Unresolved))
	}
	if report.Unresolved[0].Raw != "Atlantis" {
		t.Errorf("unresolved raw = %q, want %q", report.Unresolved[0].Raw, "Atlantis")
	}
	if !logger.Contains("Atlantis") {
		t.Error("unresolved alias was not logged")
	}
}

func TestHarmonizeUnresolvedAliasStrict(t *testing.T) {
	s := mustSeries(t, "fertility", []Observation{
		{Entity: "Atlantis", Period: 2000, Value: 1.0},
	})

	_, _, err := Harmonize(
		[]*IndicatorSeries{s},
		WithAliases(country.NewAliasMap()),
		WithStrictAliases(),
	)
	var sv *errors.SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("error is %T (%v), want *SchemaViolationError", err, err)
	}
	if sv.Indicator != "fertility" {
		t.Errorf("violation indicator = %q, want %q", sv.Indicator, "fertility")
	}
}

func TestHarmonizeAggregatePassesThrough(t *testing.T) {
	s := mustSeries(t, "fertility", []Observation{
		{Entity: "World", Period: 2000, Value: 2.7},
		{Entity: "Sub-Saharan Africa", Period: 2000, Value: 5.9},
	})

	_, report, err := Harmonize(
		[]*IndicatorSeries{s},
		WithAliases(country.NewAliasMap()),
		WithStrictAliases(),
	)
	if err != nil {
		t.Fatalf("aggregates must not trip strict alias mode: %v", err)
	}
	if len(report.Unresolved) != 0 {
		t.Errorf("aggregates flagged as unresolved: %v", report.Unresolved)
	}
}

func TestHarmonizeNormalizationCollision(t *testing.T) {
	// Two raw spellings of the same country in the same period collapse
	// onto one key; merging them silently would lose a value.
	s := mustSeries(t, "fertility", []Observation{
		{Entity: "Swaziland", Period: 2000, Value: 3.9},
		{Entity: "Eswatini", Period: 2000, Value: 4.0},
	})

	_, _, err := Harmonize(
		[]*IndicatorSeries{s},
		WithAliases(country.NewAliasMap()),
	)
	var sv *errors.SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("error is %T (%v), want *SchemaViolationError", err, err)
	}
	if sv.Entity != "Eswatini" || sv.Period != 2000 {
		t.Errorf("violation key = (%s, %d), want (Eswatini, 2000)", sv.Entity, sv.Period)
	}
}

func TestHarmonizeBareCodeUppercased(t *testing.T) {
	s := mustSeries(t, "fertility", []Observation{
		{Entity: "usa", Period: 2000, Value: 2.1},
	})

	p, _, err := Harmonize([]*IndicatorSeries{s})
	if err != nil {
		t.Fatalf("Harmonize() error: %v", err)
	}
	if got := p.Row(0).Entity; got != "USA" {
		t.Errorf("entity = %q, want %q", got, "USA")
	}
}

func TestHarmonizeParallelMatchesSequential(t *testing.T) {
	var obsA, obsB []Observation
	for e := 0; e < 40; e++ {
		entity := string(rune('A'+e%26)) + string(rune('A'+(e/26)%26)) + "X"
		for period := 1960; period < 2020; period++ {
			if (e+period)%3 != 0 {
				obsA = append(obsA, Observation{Entity: entity, Period: period, Value: float64(e * period)})
			}
			if (e+period)%4 != 0 {
				obsB = append(obsB, Observation{Entity: entity, Period: period, Value: float64(e + period)})
			}
		}
	}
	series := func() []*IndicatorSeries {
		return []*IndicatorSeries{mustSeries(t, "a", obsA), mustSeries(t, "b", obsB)}
	}

	sequential, _, err := Harmonize(series(), WithParallelThreshold(1<<30))
	if err != nil {
		t.Fatalf("sequential Harmonize() error: %v", err)
	}
	parallel, _, err := Harmonize(series(), WithParallelThreshold(1))
	if err != nil {
		t.Fatalf("parallel Harmonize() error: %v", err)
	}

	if !reflect.DeepEqual(sequential.Rows(), parallel.Rows()) {
		t.Error("parallel row materialization diverged from sequential")
	}
}

func findRow(t *testing.T, p *Panel, entity string, period int) PanelRow {
	t.Helper()
	for _, row := range p.Rows() {
		if row.Entity == entity && row.Period == period {
			return row
		}
	}
	t.Fatalf("no row for (%s, %d)", entity, period)
	return PanelRow{}
}
