// Standard attribute keys for harmonization and modeling log events.
//
// Using these keys consistently keeps log output filterable: coverage
// warnings for one indicator, row counts per merge, fit durations per
// model. Keys follow a hierarchical naming convention ("panel.indicator",
// "data.rows") for structured log analysis.

package log

// Pipeline and operation context.
const (
	// ComponentKey identifies the package performing the operation.
	// Examples: "panel", "ingest", "transform", "analysis"
	ComponentKey = "component"

	// OperationKey names the operation being performed.
	// Standard values: "harmonize", "load", "apply", "fit", "predict", "forecast"
	OperationKey = "operation"

	// ModelNameKey identifies a model or transform type.
	// Examples: "LinearRegression", "TrendForecaster", "ForwardFill"
	ModelNameKey = "model.name"
)

// Panel data context.
const (
	// IndicatorKey names a single indicator series.
	IndicatorKey = "panel.indicator"

	// IndicatorsKey is the number of indicator series in a merge.
	IndicatorsKey = "panel.indicators"

	// EntityKey is a normalized entity code.
	EntityKey = "panel.entity"

	// PeriodKey is a calendar-year period.
	PeriodKey = "panel.period"

	// RowsKey is the number of panel rows produced or consumed.
	RowsKey = "data.rows"

	// ObservationsKey is the number of raw observations in a series.
	ObservationsKey = "data.observations"

	// MissingKey is a count of absent values or missing keys.
	MissingKey = "data.missing"

	// DroppedKey is a count of rows excluded from an operation, such as
	// incomplete rows left out of a model fit.
	DroppedKey = "data.dropped"

	// UnresolvedKey is a count of entity codes that failed alias resolution.
	UnresolvedKey = "alias.unresolved"
)

// Performance context.
const (
	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "duration_ms"
)
