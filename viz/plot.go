// Package viz renders harmonized panels as plots: per-entity indicator
// time series and cross-indicator scatters. Rows with absent values are
// left out of the geometry but always counted, never silently swallowed.
package viz

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// TimeSeries plots one indicator over time, one line per entity. Entities
// default to every entity in the panel; entities without a single
// observation of the indicator get no line.
func TimeSeries(p *panel.Panel, indicator string, entities ...string) (*plot.Plot, error) {
	unit, ok := indicatorUnit(p, indicator)
	if !ok {
		return nil, errors.NewValueError("viz.TimeSeries", "unknown indicator "+indicator)
	}
	if len(entities) == 0 {
		entities = p.Entities()
	}

	points := make(map[string]plotter.XYs, len(entities))
	for _, row := range p.Rows() {
		if v, ok := row.Value(indicator).Float64(); ok {
			points[row.Entity] = append(points[row.Entity], plotter.XY{X: float64(row.Period), Y: v})
		}
	}

	plt := plot.New()
	plt.Title.Text = indicator
	plt.X.Label.Text = "year"
	plt.Y.Label.Text = unit

	var args []interface{}
	for _, entity := range entities {
		if xys, ok := points[entity]; ok {
			args = append(args, entity, xys)
		}
	}
	if len(args) == 0 {
		return nil, errors.NewValueError("viz.TimeSeries", "no observations to plot for "+indicator)
	}
	if err := plotutil.AddLinePoints(plt, args...); err != nil {
		return nil, errors.Wrap(err, "adding series lines")
	}
	return plt, nil
}

// Scatter plots one indicator against another over the rows where both
// are present. The second return value is the number of rows dropped
// because either side was absent.
func Scatter(p *panel.Panel, xIndicator, yIndicator string) (*plot.Plot, int, error) {
	xUnit, ok := indicatorUnit(p, xIndicator)
	if !ok {
		return nil, 0, errors.NewValueError("viz.Scatter", "unknown indicator "+xIndicator)
	}
	yUnit, ok := indicatorUnit(p, yIndicator)
	if !ok {
		return nil, 0, errors.NewValueError("viz.Scatter", "unknown indicator "+yIndicator)
	}

	var xys plotter.XYs
	dropped := 0
	for _, row := range p.Rows() {
		x, xOK := row.Value(xIndicator).Float64()
		y, yOK := row.Value(yIndicator).Float64()
		if !xOK || !yOK {
			dropped++
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}
	if len(xys) == 0 {
		return nil, dropped, errors.NewValueError("viz.Scatter",
			"no rows with both "+xIndicator+" and "+yIndicator+" present")
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, dropped, errors.Wrap(err, "building scatter")
	}

	plt := plot.New()
	plt.Title.Text = yIndicator + " vs " + xIndicator
	plt.X.Label.Text = axisLabel(xIndicator, xUnit)
	plt.Y.Label.Text = axisLabel(yIndicator, yUnit)
	plt.Add(scatter)
	return plt, dropped, nil
}

// Save writes a plot to disk at a default figure size; the format follows
// the file extension (.png, .svg, .pdf).
func Save(plt *plot.Plot, path string) error {
	return errors.Wrapf(plt.Save(8*vg.Inch, 5*vg.Inch, path), "saving plot to %s", path)
}

func indicatorUnit(p *panel.Panel, name string) (string, bool) {
	for _, ind := range p.Indicators() {
		if ind.Name == name {
			return ind.Unit, true
		}
	}
	return "", false
}

func axisLabel(name, unit string) string {
	if unit == "" {
		return name
	}
	return name + " (" + unit + ")"
}
