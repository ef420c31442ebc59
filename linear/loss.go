package linear

import (
	"math"

	"github.com/robustfit/robustfit/pkg/errors"
)

// PenaltyFunction scores the residual of a single observation. The fitting
// core minimizes the weighted mean of these scores over the training set,
// so each implementation fully determines one estimator's loss.
type PenaltyFunction interface {
	// Penalty returns the loss contribution of one residual
	// (residual = yTrue - yPred).
	Penalty(residual float64) float64

	// Name returns the name of the loss.
	Name() string
}

// LADPenalty is the least-absolute-deviation loss |residual|. It is not
// differentiable at zero, so it must be paired with a derivative-free
// minimizer.
type LADPenalty struct{}

func (LADPenalty) Penalty(residual float64) float64 {
	return math.Abs(residual)
}

func (LADPenalty) Name() string {
	return "least_absolute_deviation"
}

// AsymmetricSquaredPenalty is a squared loss with different weights for
// the two residual signs. A positive residual means the model
// underestimated and is scored Under*r^2; a negative residual means it
// overestimated and is scored Over*r^2. Equal factors reduce to an
// ordinary squared loss up to a constant factor.
type AsymmetricSquaredPenalty struct {
	// Over is the multiplier applied to squared negative residuals.
	Over float64
	// Under is the multiplier applied to squared positive residuals.
	Under float64
}

func (p AsymmetricSquaredPenalty) Penalty(residual float64) float64 {
	switch {
	case residual > 0:
		return p.Under * residual * residual
	case residual < 0:
		return p.Over * residual * residual
	default:
		return 0
	}
}

func (p AsymmetricSquaredPenalty) Name() string {
	return "asymmetric_squared"
}

// Validate checks that both penalty factors are strictly positive and
// finite.
func (p AsymmetricSquaredPenalty) Validate(modelName string) error {
	if !(p.Over > 0) || math.IsInf(p.Over, 0) {
		return errors.NewConfigurationError(modelName, "overPenalty", "must be strictly positive and finite", p.Over)
	}
	if !(p.Under > 0) || math.IsInf(p.Under, 0) {
		return errors.NewConfigurationError(modelName, "underPenalty", "must be strictly positive and finite", p.Under)
	}
	return nil
}
