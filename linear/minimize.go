package linear

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/robustfit/robustfit/pkg/errors"
)

// The driver runs Nelder-Mead, which is derivative-free and therefore
// indifferent to the kink of the absolute-value loss at zero residual.
// Nelder-Mead knows nothing about constraints, so bounds and equalities
// are folded into the objective as quadratic exterior penalties whose
// weight escalates stage by stage; each stage warm-starts from the
// previous solution and restarts the simplex once to escape premature
// collapse. At a stationary point of the penalized problem the residual
// violation shrinks like 1/weight, so the final stage pins it well below
// the acceptance tolerance.
var penaltyWeights = []float64{1e4, 1e6, 1e8, 1e10}

// violationTol is the largest residual constraint violation accepted as a
// converged fit.
const violationTol = 1e-6

// stallIterations is the number of non-improving iterations after which
// the function converger declares a stage finished.
const stallIterations = 30

// minimizer drives the numerical search for one fit.
type minimizer struct {
	modelName string
	tol       float64
	maxEvals  int
}

// run minimizes the objective over a dim-long parameter vector whose
// first nCoef entries are the coefficients the constraints apply to. The
// initial guess is the zero vector. It returns the optimized parameters
// or a ConvergenceError; it never returns a non-finite or
// constraint-violating vector.
func (m minimizer) run(objective func([]float64) float64, dim, nCoef int, cons []Constraint) ([]float64, error) {
	if err := m.checkFeasible(cons); err != nil {
		return nil, err
	}

	weights := penaltyWeights
	if len(cons) == 0 {
		weights = []float64{0}
	}

	x := make([]float64, dim)
	evalsLeft := m.maxEvals
	for _, weight := range weights {
		penalized := m.penalize(objective, nCoef, cons, weight)

		// Two runs per stage: the second rebuilds the simplex around
		// the stage solution, polishing it.
		for run := 0; run < 2; run++ {
			if evalsLeft <= 0 {
				return nil, errors.NewConvergenceError(m.modelName, "FunctionEvaluationLimit",
					"objective evaluation budget exhausted before convergence")
			}

			problem := optimize.Problem{Func: penalized}
			settings := &optimize.Settings{
				Converger: &optimize.FunctionConverge{
					Absolute:   m.tol,
					Relative:   m.tol,
					Iterations: stallIterations,
				},
				FuncEvaluations: evalsLeft,
			}

			result, err := optimize.Minimize(problem, x, settings, &optimize.NelderMead{})
			if err != nil {
				status := ""
				if result != nil {
					status = result.Status.String()
				}
				return nil, errors.NewConvergenceError(m.modelName, status, err.Error())
			}
			if !converged(result.Status) {
				return nil, errors.NewConvergenceError(m.modelName, result.Status.String(),
					"minimizer stopped without reaching its convergence criterion")
			}

			evalsLeft -= result.Stats.FuncEvaluations
			copy(x, result.X)
		}
	}

	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.NewConvergenceError(m.modelName, "", "minimizer returned non-finite parameters")
		}
	}
	for _, c := range cons {
		if v := c.Violation(x[:nCoef]); v > violationTol {
			return nil, errors.NewConvergenceError(m.modelName, "",
				"constraint "+c.Describe()+" still violated at the returned solution")
		}
	}

	return x, nil
}

// penalize augments the objective with the weighted squared constraint
// violations.
func (m minimizer) penalize(objective func([]float64) float64, nCoef int, cons []Constraint, weight float64) func([]float64) float64 {
	if len(cons) == 0 {
		return objective
	}
	return func(x []float64) float64 {
		v := objective(x)
		coef := x[:nCoef]
		for _, c := range cons {
			viol := c.Violation(coef)
			v += weight * viol * viol
		}
		return v
	}
}

// checkFeasible rejects constraint combinations with an empty feasible
// set before any search is spent on them.
func (m minimizer) checkFeasible(cons []Constraint) error {
	var nonNegative bool
	for _, c := range cons {
		if _, ok := c.(NonNegative); ok {
			nonNegative = true
		}
	}
	if !nonNegative {
		return nil
	}
	for _, c := range cons {
		if s, ok := c.(SumTo); ok && s.Target < 0 {
			return errors.NewConvergenceError(m.modelName, "",
				"constraints are jointly infeasible: "+s.Describe()+" cannot hold with "+NonNegative{}.Describe())
		}
	}
	return nil
}

// converged reports whether the optimizer terminated on a convergence
// criterion rather than a resource limit or failure.
func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionConvergence, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}
	return false
}
