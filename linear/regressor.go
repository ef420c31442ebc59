// Package linear provides linear regression estimators for convex losses
// that closed-form least-squares solvers cannot handle. Each estimator
// pairs a per-residual penalty with a derivative-free minimization driver
// and supports non-negativity and coefficient-sum constraints.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/robustfit/robustfit/core/model"
	"github.com/robustfit/robustfit/metrics"
	"github.com/robustfit/robustfit/pkg/errors"
)

var (
	_ model.Regressor         = (*LADRegression)(nil)
	_ model.WeightedEstimator = (*LADRegression)(nil)
	_ model.Regressor         = (*ImbalancedRegression)(nil)
	_ model.WeightedEstimator = (*ImbalancedRegression)(nil)
)

// LADRegression fits a linear model that minimizes the mean absolute
// residual instead of the squared one. A single large outlier moves the
// fitted line far less than it would under ordinary least squares.
//
// Fit replaces the fitted state wholesale; a failed fit leaves the
// previous state untouched. Concurrent Fit calls on one instance must be
// serialized by the caller. Predict only reads fitted state and is safe
// for concurrent readers while no Fit is in flight.
type LADRegression struct {
	model.BaseEstimator
	cfg config

	Weights   *mat.VecDense // Fitted coefficients, one per feature
	Intercept float64       // Fitted intercept, 0 when disabled
	NFeatures int           // Number of features seen during fit
}

// NewLADRegression creates a least-absolute-deviation regressor.
func NewLADRegression(opts ...Option) *LADRegression {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LADRegression{cfg: cfg}
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
func (lr *LADRegression) Fit(X, y mat.Matrix) error {
	return lr.FitWeighted(X, y, nil)
}

// FitWeighted trains the model with one non-negative weight per
// observation. A nil sampleWeight means uniform weights.
func (lr *LADRegression) FitWeighted(X, y mat.Matrix, sampleWeight []float64) error {
	weights, intercept, nFeatures, err := fitMinimize("LADRegression", LADPenalty{}, lr.cfg, X, y, sampleWeight)
	if err != nil {
		return err
	}
	lr.Weights = weights
	lr.Intercept = intercept
	lr.NFeatures = nFeatures
	lr.SetFitted()
	return nil
}

// Predict returns X · coefficients + intercept as an n×1 matrix.
func (lr *LADRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	return predictLinear("LADRegression", X, lr.IsFitted(), lr.Weights, lr.Intercept, lr.NFeatures)
}

// Score returns the coefficient of determination R² on X, y.
func (lr *LADRegression) Score(X, y mat.Matrix) (float64, error) {
	return scoreLinear(lr, "LADRegression", X, y)
}

// GetWeights returns the fitted coefficients as a slice.
func (lr *LADRegression) GetWeights() []float64 {
	return weightsSlice(lr.Weights)
}

// GetIntercept returns the fitted intercept.
func (lr *LADRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// ImbalancedRegression fits a linear model under a squared loss that
// punishes overestimation and underestimation differently. With
// overPenalty > underPenalty the fitted predictions are biased downward,
// and vice versa; equal factors reproduce an ordinary squared-error fit.
//
// The state and concurrency contract is the same as for LADRegression.
type ImbalancedRegression struct {
	model.BaseEstimator
	cfg config

	// OverPenalty scales the squared loss of overestimated observations
	// (negative residuals); UnderPenalty scales the underestimated ones.
	// Both must be strictly positive.
	OverPenalty  float64
	UnderPenalty float64

	Weights   *mat.VecDense // Fitted coefficients, one per feature
	Intercept float64       // Fitted intercept, 0 when disabled
	NFeatures int           // Number of features seen during fit
}

// NewImbalancedRegression creates an asymmetrically penalized regressor
// with the given overestimation and underestimation penalty factors. The
// factors are validated at the first Fit call.
func NewImbalancedRegression(overPenalty, underPenalty float64, opts ...Option) *ImbalancedRegression {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ImbalancedRegression{
		cfg:          cfg,
		OverPenalty:  overPenalty,
		UnderPenalty: underPenalty,
	}
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
func (ir *ImbalancedRegression) Fit(X, y mat.Matrix) error {
	return ir.FitWeighted(X, y, nil)
}

// FitWeighted trains the model with one non-negative weight per
// observation. A nil sampleWeight means uniform weights.
func (ir *ImbalancedRegression) FitWeighted(X, y mat.Matrix, sampleWeight []float64) error {
	penalty := AsymmetricSquaredPenalty{Over: ir.OverPenalty, Under: ir.UnderPenalty}
	if err := penalty.Validate("ImbalancedRegression"); err != nil {
		return err
	}
	weights, intercept, nFeatures, err := fitMinimize("ImbalancedRegression", penalty, ir.cfg, X, y, sampleWeight)
	if err != nil {
		return err
	}
	ir.Weights = weights
	ir.Intercept = intercept
	ir.NFeatures = nFeatures
	ir.SetFitted()
	return nil
}

// Predict returns X · coefficients + intercept as an n×1 matrix.
func (ir *ImbalancedRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	return predictLinear("ImbalancedRegression", X, ir.IsFitted(), ir.Weights, ir.Intercept, ir.NFeatures)
}

// Score returns the coefficient of determination R² on X, y.
func (ir *ImbalancedRegression) Score(X, y mat.Matrix) (float64, error) {
	return scoreLinear(ir, "ImbalancedRegression", X, y)
}

// GetWeights returns the fitted coefficients as a slice.
func (ir *ImbalancedRegression) GetWeights() []float64 {
	return weightsSlice(ir.Weights)
}

// GetIntercept returns the fitted intercept.
func (ir *ImbalancedRegression) GetIntercept() float64 {
	if !ir.IsFitted() {
		return 0
	}
	return ir.Intercept
}

// fitMinimize is the shared fitting core: it validates the inputs and
// configuration, builds the objective and constraints, runs the
// minimization driver and splits the solution into coefficients and
// intercept.
func fitMinimize(name string, pf PenaltyFunction, cfg config, X, y mat.Matrix, sampleWeight []float64) (*mat.VecDense, float64, int, error) {
	op := name + ".Fit"

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, 0, 0, errors.Wrap(errors.ErrEmptyData, op)
	}
	yr, yc := y.Dims()
	if yr != r {
		return nil, 0, 0, errors.NewDimensionError(op, r, yr, 0)
	}
	if yc != 1 {
		return nil, 0, 0, errors.NewValueError(op, "y must be a column vector")
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !isFinite(X.At(i, j)) {
				return nil, 0, 0, errors.NewValueError(op, "X contains non-finite values")
			}
		}
		if !isFinite(y.At(i, 0)) {
			return nil, 0, 0, errors.NewValueError(op, "y contains non-finite values")
		}
	}
	if sampleWeight != nil {
		if len(sampleWeight) != r {
			return nil, 0, 0, errors.NewDimensionError(op, r, len(sampleWeight), 0)
		}
		var sum float64
		for _, w := range sampleWeight {
			if !isFinite(w) || w < 0 {
				return nil, 0, 0, errors.NewValueError(op, "sample weights must be finite and non-negative")
			}
			sum += w
		}
		if sum == 0 {
			return nil, 0, 0, errors.NewValueError(op, "sample weights sum to zero")
		}
	}

	if cfg.coefSum != nil && !isFinite(*cfg.coefSum) {
		return nil, 0, 0, errors.NewConfigurationError(name, "coefSum", "must be finite", *cfg.coefSum)
	}
	if cfg.tol <= 0 {
		return nil, 0, 0, errors.NewConfigurationError(name, "tolerance", "must be strictly positive", cfg.tol)
	}
	if cfg.maxEvals <= 0 {
		return nil, 0, 0, errors.NewConfigurationError(name, "maxEvaluations", "must be strictly positive", cfg.maxEvals)
	}

	dim := c
	if cfg.fitIntercept {
		dim++
	}

	objective := buildObjective(X, y, sampleWeight, pf, cfg.fitIntercept)
	cons := buildConstraints(cfg)

	driver := minimizer{modelName: name, tol: cfg.tol, maxEvals: cfg.maxEvals}
	params, err := driver.run(objective, dim, c, cons)
	if err != nil {
		return nil, 0, 0, err
	}

	weights := mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		weights.SetVec(j, params[j])
	}
	intercept := 0.0
	if cfg.fitIntercept {
		intercept = params[c]
	}
	return weights, intercept, c, nil
}

// predictLinear computes X · weights + intercept for a fitted model.
func predictLinear(name string, X mat.Matrix, fitted bool, weights *mat.VecDense, intercept float64, nFeatures int) (mat.Matrix, error) {
	if !fitted {
		return nil, errors.NewNotFittedError(name, "Predict")
	}

	r, c := X.Dims()
	if c != nFeatures {
		return nil, errors.NewDimensionError(name+".Predict", nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// scoreLinear computes R² through the metrics package.
func scoreLinear(p model.Predictor, name string, X, y mat.Matrix) (float64, error) {
	yPred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}

	r, yc := y.Dims()
	if yc != 1 {
		return 0, errors.NewValueError(name+".Score", "y must be a column vector")
	}
	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, y.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}
	return metrics.R2Score(yTrueVec, yPredVec)
}

func weightsSlice(weights *mat.VecDense) []float64 {
	if weights == nil {
		return nil
	}
	out := make([]float64, weights.Len())
	for i := 0; i < weights.Len(); i++ {
		out[i] = weights.AtVec(i)
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
