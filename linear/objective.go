package linear

import (
	"gonum.org/v1/gonum/mat"
)

// buildObjective closes over the training data and returns the scalar
// loss of a candidate parameter vector: the weighted mean of the penalty
// over all residuals. The parameter layout is one entry per feature
// column, followed by the intercept entry when intercept fitting is on.
// Callers must validate shapes and weights before building the objective.
func buildObjective(X, y mat.Matrix, sampleWeight []float64, pf PenaltyFunction, fitIntercept bool) func(params []float64) float64 {
	r, c := X.Dims()
	return func(params []float64) float64 {
		var lossSum, weightSum float64
		for i := 0; i < r; i++ {
			pred := 0.0
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * params[j]
			}
			if fitIntercept {
				pred += params[c]
			}
			residual := y.At(i, 0) - pred

			w := 1.0
			if sampleWeight != nil {
				w = sampleWeight[i]
			}
			lossSum += w * pf.Penalty(residual)
			weightSum += w
		}
		return lossSum / weightSum
	}
}
