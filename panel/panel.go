package panel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/demostats/panelkit/pkg/errors"
)

// PanelRow is one merged record: an entity, a period, and one Value per
// indicator in the panel. Rows are produced only by Harmonize or by a
// transform rebuilding a panel; downstream consumers treat them as
// read-only.
type PanelRow struct {
	Entity string
	Period int
	Values map[string]Value
}

// Key returns the row's (entity, period) key.
func (r PanelRow) Key() Key {
	return Key{Entity: r.Entity, Period: r.Period}
}

// Value returns the row's value for an indicator. An indicator the panel
// does not carry reads as absent.
func (r PanelRow) Value(indicator string) Value {
	return r.Values[indicator]
}

// Panel is the merged wide-format dataset: one row per (entity, period)
// key, one column per indicator. It is immutable after construction.
type Panel struct {
	indicators []Indicator
	rows       []PanelRow
}

// NewPanel builds a panel from already-merged rows. It is used by
// transforms that rebuild a panel after filling values; rows must be
// ordered by entity then period with unique keys.
func NewPanel(indicators []Indicator, rows []PanelRow) (*Panel, error) {
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1].Key(), rows[i].Key()
		if !prev.Less(cur) {
			return nil, errors.NewValidationError("rows",
				"must be ordered by entity then period with unique keys", cur.String())
		}
	}
	return &Panel{indicators: indicators, rows: rows}, nil
}

// Len returns the number of rows.
func (p *Panel) Len() int {
	return len(p.rows)
}

// Rows returns the merged rows ordered by entity then period. The slice is
// shared; callers must not modify it.
func (p *Panel) Rows() []PanelRow {
	return p.rows
}

// Row returns the i-th row.
func (p *Panel) Row(i int) PanelRow {
	return p.rows[i]
}

// Indicators returns the panel's indicators in input order.
func (p *Panel) Indicators() []Indicator {
	out := make([]Indicator, len(p.indicators))
	copy(out, p.indicators)
	return out
}

// IndicatorNames returns the indicator names in input order.
func (p *Panel) IndicatorNames() []string {
	names := make([]string, len(p.indicators))
	for i, ind := range p.indicators {
		names[i] = ind.Name
	}
	return names
}

// HasIndicator reports whether the panel carries the named indicator.
func (p *Panel) HasIndicator(name string) bool {
	for _, ind := range p.indicators {
		if ind.Name == name {
			return true
		}
	}
	return false
}

// Entities returns the distinct entity codes, sorted.
func (p *Panel) Entities() []string {
	seen := make(map[string]struct{})
	var entities []string
	for _, row := range p.rows {
		if _, ok := seen[row.Entity]; !ok {
			seen[row.Entity] = struct{}{}
			entities = append(entities, row.Entity)
		}
	}
	sort.Strings(entities)
	return entities
}

// Periods returns the distinct periods, ascending.
func (p *Panel) Periods() []int {
	seen := make(map[int]struct{})
	var periods []int
	for _, row := range p.rows {
		if _, ok := seen[row.Period]; !ok {
			seen[row.Period] = struct{}{}
			periods = append(periods, row.Period)
		}
	}
	sort.Ints(periods)
	return periods
}

// Column returns one indicator's values in row order, with NaN marking
// absent observations.
func (p *Panel) Column(indicator string) ([]float64, error) {
	if !p.HasIndicator(indicator) {
		return nil, errors.NewValueError("Panel.Column", "unknown indicator "+indicator)
	}
	col := make([]float64, len(p.rows))
	for i, row := range p.rows {
		if v, ok := row.Value(indicator).Float64(); ok {
			col[i] = v
		} else {
			col[i] = math.NaN()
		}
	}
	return col, nil
}

// Matrix renders the panel as a dense matrix for the analysis layer: one
// row per panel row, one column per requested indicator (all indicators
// when none are named), NaN for absent values. The returned key slice
// gives the (entity, period) of each matrix row.
func (p *Panel) Matrix(indicators ...string) (*mat.Dense, []Key, error) {
	if len(indicators) == 0 {
		indicators = p.IndicatorNames()
	}
	if len(indicators) == 0 || len(p.rows) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "Panel.Matrix")
	}
	for _, name := range indicators {
		if !p.HasIndicator(name) {
			return nil, nil, errors.NewValueError("Panel.Matrix", "unknown indicator "+name)
		}
	}

	m := mat.NewDense(len(p.rows), len(indicators), nil)
	keys := make([]Key, len(p.rows))
	for i, row := range p.rows {
		keys[i] = row.Key()
		for j, name := range indicators {
			if v, ok := row.Value(name).Float64(); ok {
				m.Set(i, j, v)
			} else {
				m.Set(i, j, math.NaN())
			}
		}
	}
	return m, keys, nil
}
