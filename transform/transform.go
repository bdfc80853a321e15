// Package transform provides downstream panel transforms, chiefly the
// imputation steps that the harmonizer deliberately refuses to perform.
// Keeping them here, behind explicit names, means raw coverage is always
// inspectable before any value is invented.
//
// Every transform is pure: the input panel is never modified and the
// result is a fresh panel.
package transform

import (
	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// Transformer rewrites a panel into a derived panel.
type Transformer interface {
	// Name identifies the transform in logs and reports.
	Name() string

	// Apply returns a new panel; the input is left untouched.
	Apply(p *panel.Panel) (*panel.Panel, error)
}

// targetIndicators validates the requested indicator names against the
// panel, defaulting to all of them.
func targetIndicators(op string, p *panel.Panel, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return p.IndicatorNames(), nil
	}
	for _, name := range requested {
		if !p.HasIndicator(name) {
			return nil, errors.NewValueError(op, "unknown indicator "+name)
		}
	}
	return requested, nil
}

// cloneRows deep-copies panel rows so a transform can fill values without
// aliasing the input.
func cloneRows(p *panel.Panel) []panel.PanelRow {
	rows := make([]panel.PanelRow, p.Len())
	for i, row := range p.Rows() {
		values := make(map[string]panel.Value, len(row.Values))
		for k, v := range row.Values {
			values[k] = v
		}
		rows[i] = panel.PanelRow{Entity: row.Entity, Period: row.Period, Values: values}
	}
	return rows
}

// entityRuns yields the [start, end) index ranges of rows sharing an
// entity. Rows are ordered by entity then period, so runs are contiguous.
func entityRuns(rows []panel.PanelRow, fn func(start, end int)) {
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].Entity != rows[start].Entity {
			fn(start, i)
			start = i
		}
	}
}
