package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that learn from training data.
type Estimator interface {
	// Fit trains the model on X and y.
	Fit(X, y mat.Matrix) error

	// IsFitted reports whether the model has been fitted.
	IsFitted() bool
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns predictions for the samples in X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// WeightedEstimator is the interface for estimators that accept
// per-observation sample weights.
type WeightedEstimator interface {
	Estimator

	// FitWeighted trains the model with one non-negative weight per
	// observation. A nil weight slice means uniform weights.
	FitWeighted(X, y mat.Matrix, sampleWeight []float64) error
}

// Regressor combines the interfaces of a regression model.
type Regressor interface {
	Estimator
	Predictor
	Scorer
}

// Transformer is the interface for feature transformers.
type Transformer interface {
	// Fit learns any statistics the transformation needs from X.
	Fit(X mat.Matrix) error

	// Transform applies the transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)
}
