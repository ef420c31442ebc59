// Package errors provides the structured error types shared by all
// estimators and transformers in this library. It is inspired by
// scikit-learn's exception hierarchy and wraps cockroachdb/errors so every
// error carries a stacktrace.
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

// NotFittedError is returned when Predict, Transform or Score is called on
// a model that has not been fitted yet.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("robustfit: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stacktrace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when the shape of an input does not match the
// expected shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("robustfit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stacktrace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError is returned when an argument has an unacceptable value, such
// as a NaN target or a negative sample weight.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("robustfit: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stacktrace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ConfigurationError is returned when a hyperparameter required by the
// selected loss or constraint is missing or out of range.
type ConfigurationError struct {
	ModelName string
	Param     string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("robustfit: %s: invalid configuration for parameter '%s': %s (got: %v)", e.ModelName, e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stacktrace
// attached.
func NewConfigurationError(modelName, param, reason string, value interface{}) error {
	err := &ConfigurationError{ModelName: modelName, Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ConvergenceError is returned when the numerical search behind a fit does
// not terminate at a usable solution: the minimizer reports failure, the
// returned parameters are not finite, or a constraint stays violated.
type ConvergenceError struct {
	ModelName string
	Status    string
	Reason    string
}

func (e *ConvergenceError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("robustfit: %s: fit did not converge (%s): %s", e.ModelName, e.Status, e.Reason)
	}
	return fmt.Sprintf("robustfit: %s: fit did not converge: %s", e.ModelName, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConvergenceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("status", e.Status).
		Str("reason", e.Reason).
		Str("type", "ConvergenceError")
}

// NewConvergenceError creates a ConvergenceError with a stacktrace
// attached.
func NewConvergenceError(modelName, status, reason string) error {
	err := &ConvergenceError{ModelName: modelName, Status: status, Reason: reason}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches the target error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to the target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stacktrace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stacktrace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stacktrace to an existing error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when a training or prediction input holds
	// no observations.
	ErrEmptyData = New("empty data")
)
