package transform

import (
	"github.com/demostats/panelkit/panel"
)

// ForwardFill fills an absent value with the entity's most recent earlier
// observation of the same indicator. It never reaches across entities and
// never fills before an entity's first observation.
type ForwardFill struct {
	// Indicators restricts the fill to the named indicators; empty means
	// all of them.
	Indicators []string

	// MaxGap limits how many periods an observation may be carried
	// forward. Zero means unlimited.
	MaxGap int
}

// Name implements Transformer.
func (f *ForwardFill) Name() string { return "ForwardFill" }

// Apply implements Transformer.
func (f *ForwardFill) Apply(p *panel.Panel) (*panel.Panel, error) {
	targets, err := targetIndicators("ForwardFill.Apply", p, f.Indicators)
	if err != nil {
		return nil, err
	}

	rows := cloneRows(p)
	entityRuns(rows, func(start, end int) {
		for _, name := range targets {
			lastPeriod := 0
			lastValue := 0.0
			have := false
			for i := start; i < end; i++ {
				if v, ok := rows[i].Values[name].Float64(); ok {
					lastPeriod, lastValue, have = rows[i].Period, v, true
					continue
				}
				if !have {
					continue
				}
				if f.MaxGap > 0 && rows[i].Period-lastPeriod > f.MaxGap {
					continue
				}
				rows[i].Values[name] = panel.Some(lastValue)
			}
		}
	})

	return panel.NewPanel(p.Indicators(), rows)
}

// LinearInterpolate fills interior gaps of an entity's series by linear
// interpolation between the surrounding observations. It never
// extrapolates beyond an entity's first or last observation.
type LinearInterpolate struct {
	// Indicators restricts the interpolation to the named indicators;
	// empty means all of them.
	Indicators []string
}

// Name implements Transformer.
func (l *LinearInterpolate) Name() string { return "LinearInterpolate" }

// Apply implements Transformer.
func (l *LinearInterpolate) Apply(p *panel.Panel) (*panel.Panel, error) {
	targets, err := targetIndicators("LinearInterpolate.Apply", p, l.Indicators)
	if err != nil {
		return nil, err
	}

	rows := cloneRows(p)
	entityRuns(rows, func(start, end int) {
		for _, name := range targets {
			prev := -1 // index of the previous observed row
			for i := start; i < end; i++ {
				if _, ok := rows[i].Values[name].Float64(); !ok {
					continue
				}
				if prev >= 0 && i-prev > 1 {
					fillBetween(rows, prev, i, name)
				}
				prev = i
			}
		}
	})

	return panel.NewPanel(p.Indicators(), rows)
}

// fillBetween interpolates the absent rows strictly between two observed
// rows of the same entity, weighting by period distance so uneven year
// gaps interpolate correctly.
func fillBetween(rows []panel.PanelRow, lo, hi int, name string) {
	vLo, _ := rows[lo].Values[name].Float64()
	vHi, _ := rows[hi].Values[name].Float64()
	pLo, pHi := rows[lo].Period, rows[hi].Period
	span := float64(pHi - pLo)

	for i := lo + 1; i < hi; i++ {
		t := float64(rows[i].Period-pLo) / span
		rows[i].Values[name] = panel.Some(vLo + t*(vHi-vLo))
	}
}
