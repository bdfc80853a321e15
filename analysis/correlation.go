package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// CorrelationMatrix computes pairwise Pearson correlations between
// indicator columns of a panel. Gaps are handled with pairwise-complete
// observations: each pair is correlated over exactly the rows where both
// indicators are present, so one sparse indicator does not shrink every
// other pair's sample. A pair with fewer than two complete observations,
// or with no variance, correlates as NaN.
//
// The returned matrix is indexed in the order of the returned names.
func CorrelationMatrix(p *panel.Panel, indicators ...string) (*mat.SymDense, []string, error) {
	if len(indicators) == 0 {
		indicators = p.IndicatorNames()
	}
	if len(indicators) < 2 {
		return nil, nil, errors.NewValueError("CorrelationMatrix", "need at least two indicators")
	}

	columns := make([][]float64, len(indicators))
	for i, name := range indicators {
		col, err := p.Column(name)
		if err != nil {
			return nil, nil, err
		}
		columns[i] = col
	}

	corr := mat.NewSymDense(len(indicators), nil)
	for i := range indicators {
		corr.SetSym(i, i, 1)
		for j := i + 1; j < len(indicators); j++ {
			corr.SetSym(i, j, pairwiseCorrelation(columns[i], columns[j]))
		}
	}
	return corr, indicators, nil
}

// pairwiseCorrelation correlates two columns over their complete rows.
func pairwiseCorrelation(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
