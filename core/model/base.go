// Package model defines the interfaces and base types shared by every
// estimator and transformer in the library.
package model

// EstimatorState tracks whether a model has been fitted.
type EstimatorState int

const (
	// NotFitted is the state of a model before a successful Fit call.
	NotFitted EstimatorState = iota
	// Fitted is the state of a model after a successful Fit call.
	Fitted
)

// BaseEstimator is embedded by every model to carry its fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
