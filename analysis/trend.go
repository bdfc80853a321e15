package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/demostats/panelkit/core/model"
	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// TrendForecaster fits an independent linear trend over time for each
// entity's series of one indicator, and extrapolates it to future
// periods. It is the simplest forecasting baseline for annual panel data;
// anything seasonal or autoregressive is out of its scope.
type TrendForecaster struct {
	model.BaseEstimator

	indicator string
	trends    map[string]trendLine
	minObs    int
}

// trendLine is one entity's fitted line value = intercept + slope*period.
type trendLine struct {
	slope      float64
	intercept  float64
	nObs       int
	lastPeriod int
}

// TrendOption configures a TrendForecaster.
type TrendOption func(*TrendForecaster)

// WithMinObservations sets how many observations an entity needs before a
// trend is fitted for it. Entities below the threshold are skipped.
// Defaults to 2, the minimum that determines a line.
func WithMinObservations(n int) TrendOption {
	return func(f *TrendForecaster) {
		if n >= 2 {
			f.minObs = n
		}
	}
}

// NewTrendForecaster creates an unfitted forecaster.
func NewTrendForecaster(opts ...TrendOption) *TrendForecaster {
	f := &TrendForecaster{minObs: 2}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit fits one trend line per entity over the indicator's observed
// (period, value) pairs. Entities with fewer observations than the
// configured minimum are skipped; fitting fails only when no entity has
// enough data at all.
func (f *TrendForecaster) Fit(p *panel.Panel, indicator string) error {
	if !p.HasIndicator(indicator) {
		return errors.NewValueError("TrendForecaster.Fit", "unknown indicator "+indicator)
	}

	byEntity := make(map[string][]panel.Observation)
	for _, row := range p.Rows() {
		if v, ok := row.Value(indicator).Float64(); ok {
			byEntity[row.Entity] = append(byEntity[row.Entity],
				panel.Observation{Entity: row.Entity, Period: row.Period, Value: v})
		}
	}

	trends := make(map[string]trendLine)
	for entity, obs := range byEntity {
		if len(obs) < f.minObs {
			continue
		}
		periods := make([]float64, len(obs))
		values := make([]float64, len(obs))
		last := obs[0].Period
		for i, o := range obs {
			periods[i] = float64(o.Period)
			values[i] = o.Value
			if o.Period > last {
				last = o.Period
			}
		}
		intercept, slope := stat.LinearRegression(periods, values, nil, false)
		trends[entity] = trendLine{slope: slope, intercept: intercept, nObs: len(obs), lastPeriod: last}
	}

	if len(trends) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "TrendForecaster.Fit")
	}

	f.indicator = indicator
	f.trends = trends
	f.SetFitted()
	return nil
}

// Forecast evaluates an entity's trend line at a period, future or past.
func (f *TrendForecaster) Forecast(entity string, period int) (float64, error) {
	if !f.IsFitted() {
		return 0, errors.NewNotFittedError("TrendForecaster", "Forecast")
	}
	line, ok := f.trends[entity]
	if !ok {
		return 0, errors.NewValueError("TrendForecaster.Forecast", "no fitted trend for entity "+entity)
	}
	return line.intercept + line.slope*float64(period), nil
}

// ForecastHorizon extrapolates an entity's trend for the given number of
// periods past its last observation.
func (f *TrendForecaster) ForecastHorizon(entity string, horizon int) ([]panel.Observation, error) {
	if !f.IsFitted() {
		return nil, errors.NewNotFittedError("TrendForecaster", "ForecastHorizon")
	}
	if horizon <= 0 {
		return nil, errors.NewValidationError("horizon", "must be positive", horizon)
	}
	line, ok := f.trends[entity]
	if !ok {
		return nil, errors.NewValueError("TrendForecaster.ForecastHorizon", "no fitted trend for entity "+entity)
	}

	out := make([]panel.Observation, horizon)
	for i := 0; i < horizon; i++ {
		period := line.lastPeriod + 1 + i
		out[i] = panel.Observation{
			Entity: entity,
			Period: period,
			Value:  line.intercept + line.slope*float64(period),
		}
	}
	return out, nil
}

// Slope returns an entity's fitted slope per period.
func (f *TrendForecaster) Slope(entity string) (float64, error) {
	if !f.IsFitted() {
		return 0, errors.NewNotFittedError("TrendForecaster", "Slope")
	}
	line, ok := f.trends[entity]
	if !ok {
		return 0, errors.NewValueError("TrendForecaster.Slope", "no fitted trend for entity "+entity)
	}
	return line.slope, nil
}

// Entities returns the entities with a fitted trend, sorted.
func (f *TrendForecaster) Entities() []string {
	entities := make([]string, 0, len(f.trends))
	for e := range f.trends {
		entities = append(entities, e)
	}
	sort.Strings(entities)
	return entities
}
