package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/demostats/panelkit/core/model"
	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// LinearRegression fits an ordinary least-squares model of one indicator
// on others. Panel rows with any absent value among the involved
// indicators are excluded from the fit (listwise deletion) and counted,
// never silently ignored.
type LinearRegression struct {
	model.BaseEstimator

	coef      *mat.VecDense
	intercept float64
	nFeatures int

	target   string
	features []string
	dropped  int
}

// NewLinearRegression creates an unfitted model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// FitPanel fits target ~ features over the panel's complete rows.
func (lr *LinearRegression) FitPanel(p *panel.Panel, target string, features ...string) error {
	if len(features) == 0 {
		return errors.NewValueError("LinearRegression.FitPanel", "need at least one feature")
	}

	names := append([]string{target}, features...)
	m, _, err := p.Matrix(names...)
	if err != nil {
		return err
	}

	// Keep only rows where the target and every feature are observed.
	rows, _ := m.Dims()
	var complete []int
	for i := 0; i < rows; i++ {
		ok := true
		for j := range names {
			if math.IsNaN(m.At(i, j)) {
				ok = false
				break
			}
		}
		if ok {
			complete = append(complete, i)
		}
	}
	lr.dropped = rows - len(complete)

	if len(complete) <= len(features) {
		return errors.NewValueError("LinearRegression.FitPanel",
			"not enough complete rows for the number of features")
	}

	X := mat.NewDense(len(complete), len(features), nil)
	y := mat.NewVecDense(len(complete), nil)
	for i, row := range complete {
		y.SetVec(i, m.At(row, 0))
		for j := range features {
			X.Set(i, j, m.At(row, j+1))
		}
	}

	if err := lr.Fit(X, y); err != nil {
		return err
	}
	lr.target = target
	lr.features = append([]string(nil), features...)
	return nil
}

// Fit solves the least-squares problem for a design matrix and target
// vector, with an intercept column added internally.
func (lr *LinearRegression) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LinearRegression.Fit")
	}
	if y.Len() != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, y.Len(), 0)
	}

	// Augment with a leading column of ones for the intercept.
	augmented := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		augmented.Set(i, 0, 1)
		for j := 0; j < c; j++ {
			augmented.Set(i, j+1, X.At(i, j))
		}
	}

	theta := mat.NewVecDense(c+1, nil)
	if err := theta.SolveVec(augmented, y); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "LinearRegression.Fit")
	}

	lr.intercept = theta.AtVec(0)
	lr.coef = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.coef.SetVec(j, theta.AtVec(j+1))
	}
	lr.nFeatures = c
	lr.SetFitted()
	return nil
}

// Predict returns the fitted values for a design matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}
	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, c, 1)
	}

	pred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		sum := lr.intercept
		for j := 0; j < c; j++ {
			sum += X.At(i, j) * lr.coef.AtVec(j)
		}
		pred.SetVec(i, sum)
	}
	return pred, nil
}

// Score returns the R² of the model's predictions against y.
func (lr *LinearRegression) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return R2Score(y, pred)
}

// Coef returns the fitted coefficients, one per feature.
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	out := make([]float64, lr.coef.Len())
	for i := range out {
		out[i] = lr.coef.AtVec(i)
	}
	return out
}

// Intercept returns the fitted intercept.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Features returns the feature indicator names of a panel fit.
func (lr *LinearRegression) Features() []string {
	return append([]string(nil), lr.features...)
}

// Target returns the target indicator name of a panel fit.
func (lr *LinearRegression) Target() string {
	return lr.target
}

// DroppedRows returns how many incomplete rows the last FitPanel excluded.
func (lr *LinearRegression) DroppedRows() int {
	return lr.dropped
}
