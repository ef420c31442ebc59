package linear

import (
	"fmt"
	"math"
)

// Constraint restricts the coefficient part of the parameter vector. The
// intercept entry, when present, is never constrained. Violation must be
// zero on the feasible set, grow smoothly with the distance from it, and
// stay cheap to evaluate: the minimization driver adds the squared
// violation to the objective with an escalating weight.
type Constraint interface {
	// Violation measures how far the coefficient vector is from
	// satisfying the constraint. Zero means satisfied.
	Violation(coef []float64) float64

	// Describe names the constraint for error messages.
	Describe() string
}

// NonNegative requires every coefficient to be >= 0.
type NonNegative struct{}

// Violation returns the Euclidean norm of the negative part of coef.
func (NonNegative) Violation(coef []float64) float64 {
	var sum float64
	for _, c := range coef {
		if c < 0 {
			sum += c * c
		}
	}
	return math.Sqrt(sum)
}

func (NonNegative) Describe() string {
	return "coefficients >= 0"
}

// SumTo requires the coefficients to sum to Target.
type SumTo struct {
	Target float64
}

// Violation returns |sum(coef) - Target|.
func (s SumTo) Violation(coef []float64) float64 {
	var sum float64
	for _, c := range coef {
		sum += c
	}
	return math.Abs(sum - s.Target)
}

func (s SumTo) Describe() string {
	return fmt.Sprintf("sum(coefficients) == %g", s.Target)
}

// buildConstraints assembles the constraint list from the estimator
// configuration. Absent options contribute no entry.
func buildConstraints(cfg config) []Constraint {
	var cons []Constraint
	if cfg.positive {
		cons = append(cons, NonNegative{})
	}
	if cfg.coefSum != nil {
		cons = append(cons, SumTo{Target: *cfg.coefSum})
	}
	return cons
}
