// Package errors provides the error handling system used across PanelKit.
// It defines structured error types for schema and alias violations raised
// by the harmonization pipeline, carrying enough context (indicator, key,
// reason) for a caller to locate the offending source data.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// SchemaViolationError reports an input indicator series that broke one of
// its own invariants: a duplicate (entity, period) key, an unparseable
// period, or an entity code that failed normalization. The whole merge is
// aborted for the offending series; it is never partially included.
type SchemaViolationError struct {
	Indicator string
	Entity    string
	Period    int
	Reason    string
}

func (e *SchemaViolationError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("panelkit: schema violation in indicator %q at key (%s, %d): %s",
			e.Indicator, e.Entity, e.Period, e.Reason)
	}
	return fmt.Sprintf("panelkit: schema violation in indicator %q: %s", e.Indicator, e.Reason)
}

// MarshalZerologObject adds the structured violation context to a zerolog event.
func (e *SchemaViolationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("indicator", e.Indicator).
		Str("entity", e.Entity).
		Int("period", e.Period).
		Str("reason", e.Reason).
		Str("type", "SchemaViolationError")
}

// NewSchemaViolation creates a SchemaViolationError with a stack trace.
func NewSchemaViolation(indicator, entity string, period int, reason string) error {
	err := &SchemaViolationError{Indicator: indicator, Entity: entity, Period: period, Reason: reason}
	return errors.WithStack(err)
}

// NewSchemaViolationf creates a series-level SchemaViolationError (no key
// context) with a formatted reason and a stack trace.
func NewSchemaViolationf(indicator, format string, args ...interface{}) error {
	err := &SchemaViolationError{Indicator: indicator, Reason: fmt.Sprintf(format, args...)}
	return errors.WithStack(err)
}

// AliasUnresolvedError reports an entity code that could not be resolved
// against the known alias set. It is raised only in strict mode; in lenient
// mode the unresolved code is kept as a distinct entity and flagged in the
// CoverageReport instead.
type AliasUnresolvedError struct {
	Indicator string
	Raw       string
	Token     string
}

func (e *AliasUnresolvedError) Error() string {
	return fmt.Sprintf("panelkit: indicator %q: entity %q (normalized %q) does not resolve against the alias set",
		e.Indicator, e.Raw, e.Token)
}

// MarshalZerologObject adds the structured alias context to a zerolog event.
func (e *AliasUnresolvedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("indicator", e.Indicator).
		Str("raw", e.Raw).
		Str("token", e.Token).
		Str("type", "AliasUnresolvedError")
}

// NewAliasUnresolved creates an AliasUnresolvedError with a stack trace.
func NewAliasUnresolved(indicator, raw, token string) error {
	err := &AliasUnresolvedError{Indicator: indicator, Raw: raw, Token: token}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict or Forecast is called on a model
// that has not been fitted yet.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("panelkit: %s: this model is not fitted yet. Call Fit() before using %s()",
		e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured model context to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports input whose dimensions differ from what an
// operation expects. Axis 0 is rows, axis 1 is columns.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("panelkit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError reports a parameter that failed validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("panelkit: validation failed for parameter %q: %s (got: %v)",
		e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured parameter context to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for an operation,
// such as an unknown indicator name or an empty input vector.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("panelkit: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a fit encounters a singular design matrix.
	ErrSingularMatrix = New("singular matrix")
)
