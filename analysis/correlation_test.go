package analysis

import (
	"math"
	"testing"

	"github.com/demostats/panelkit/panel"
)

func buildPanel(t *testing.T, series ...*panel.IndicatorSeries) *panel.Panel {
	t.Helper()
	p, _, err := panel.Harmonize(series)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustSeries(t *testing.T, name string, obs []panel.Observation) *panel.IndicatorSeries {
	t.Helper()
	s, err := panel.NewIndicatorSeries(panel.Indicator{Name: name}, obs)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCorrelationMatrixPerfectPair(t *testing.T) {
	// y = 2x + 1 exactly, over fully covered rows.
	var xObs, yObs []panel.Observation
	for i, entity := range []string{"AAA", "BBB", "CCC", "DDD"} {
		x := float64(i + 1)
		xObs = append(xObs, panel.Observation{Entity: entity, Period: 2000, Value: x})
		yObs = append(yObs, panel.Observation{Entity: entity, Period: 2000, Value: 2*x + 1})
	}
	p := buildPanel(t, mustSeries(t, "x", xObs), mustSeries(t, "y", yObs))

	corr, names, err := CorrelationMatrix(p)
	if err != nil {
		t.Fatalf("CorrelationMatrix() error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v", names)
	}
	if got := corr.At(0, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("corr(x, y) = %v, want 1", got)
	}
	if got := corr.At(0, 0); got != 1 {
		t.Errorf("corr(x, x) = %v, want 1", got)
	}
}

func TestCorrelationMatrixPairwiseComplete(t *testing.T) {
	// x and y anticorrelate on their three shared rows; the extra x-only
	// row must not poison the pair.
	x := mustSeries(t, "x", []panel.Observation{
		{Entity: "AAA", Period: 2000, Value: 1},
		{Entity: "BBB", Period: 2000, Value: 2},
		{Entity: "CCC", Period: 2000, Value: 3},
		{Entity: "DDD", Period: 2000, Value: 99},
	})
	y := mustSeries(t, "y", []panel.Observation{
		{Entity: "AAA", Period: 2000, Value: 6},
		{Entity: "BBB", Period: 2000, Value: 4},
		{Entity: "CCC", Period: 2000, Value: 2},
	})
	p := buildPanel(t, x, y)

	corr, _, err := CorrelationMatrix(p)
	if err != nil {
		t.Fatalf("CorrelationMatrix() error: %v", err)
	}
	if got := corr.At(0, 1); math.Abs(got+1) > 1e-12 {
		t.Errorf("corr(x, y) = %v, want -1 over pairwise-complete rows", got)
	}
}

func TestCorrelationMatrixInsufficientOverlap(t *testing.T) {
	x := mustSeries(t, "x", []panel.Observation{
		{Entity: "AAA", Period: 2000, Value: 1},
		{Entity: "BBB", Period: 2000, Value: 2},
	})
	y := mustSeries(t, "y", []panel.Observation{
		{Entity: "CCC", Period: 2000, Value: 3},
		{Entity: "DDD", Period: 2000, Value: 4},
	})
	p := buildPanel(t, x, y)

	corr, _, err := CorrelationMatrix(p)
	if err != nil {
		t.Fatalf("CorrelationMatrix() error: %v", err)
	}
	if got := corr.At(0, 1); !math.IsNaN(got) {
		t.Errorf("corr over zero shared rows = %v, want NaN", got)
	}
}

func TestCorrelationMatrixNeedsTwoIndicators(t *testing.T) {
	p := buildPanel(t, mustSeries(t, "x", []panel.Observation{
		{Entity: "AAA", Period: 2000, Value: 1},
	}))
	if _, _, err := CorrelationMatrix(p); err == nil {
		t.Error("CorrelationMatrix() accepted a single-indicator panel")
	}
}
