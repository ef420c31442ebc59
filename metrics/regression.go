// Package metrics provides evaluation metrics for regression models.
//
// The percentage-based metrics skip observations whose denominator is
// zero rather than dividing by it; if every observation is skipped the
// metric is undefined and an error is returned.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/robustfit/robustfit/pkg/errors"
)

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination R².
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)
		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// MAPE computes the mean absolute percentage error
// mean(|yTrue - yPred| / |yTrue|). Observations with yTrue == 0 are
// skipped; if all of them are, MAPE is undefined.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAPE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAPE", n, yPred.Len(), 0)
	}

	var sum float64
	var used int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 0 {
			continue
		}
		sum += math.Abs(yTrue.AtVec(i)-yPred.AtVec(i)) / math.Abs(yTrue.AtVec(i))
		used++
	}
	if used == 0 {
		return 0, errors.NewValueError("MAPE", "undefined: all true values are zero")
	}
	return sum / float64(used), nil
}

// SMAPE computes the symmetric mean absolute percentage error
// mean(2·|yTrue - yPred| / (|yTrue| + |yPred|)). Observations where both
// values are zero are skipped; if all of them are, SMAPE is undefined.
func SMAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("SMAPE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("SMAPE", n, yPred.Len(), 0)
	}

	var sum float64
	var used int
	for i := 0; i < n; i++ {
		denom := math.Abs(yTrue.AtVec(i)) + math.Abs(yPred.AtVec(i))
		if denom == 0 {
			continue
		}
		sum += 2 * math.Abs(yTrue.AtVec(i)-yPred.AtVec(i)) / denom
		used++
	}
	if used == 0 {
		return 0, errors.NewValueError("SMAPE", "undefined: all observations are zero")
	}
	return sum / float64(used), nil
}

// MeanDirectionalAccuracy computes the fraction of consecutive steps in
// which the prediction moves in the same direction as the truth. It needs
// at least two observations.
func MeanDirectionalAccuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n < 2 {
		return 0, errors.NewValueError("MeanDirectionalAccuracy", "needs at least two observations")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MeanDirectionalAccuracy", n, yPred.Len(), 0)
	}

	var hits int
	for i := 1; i < n; i++ {
		trueDir := sign(yTrue.AtVec(i) - yTrue.AtVec(i-1))
		predDir := sign(yPred.AtVec(i) - yPred.AtVec(i-1))
		if trueDir == predDir {
			hits++
		}
	}
	return float64(hits) / float64(n-1), nil
}

// MeanAbsoluteDeviation computes the mean absolute deviation of a series
// from its own mean, a dispersion measure typically applied to the
// predictions of a model.
func MeanAbsoluteDeviation(y *mat.VecDense) (float64, error) {
	n := y.Len()
	if n == 0 {
		return 0, errors.NewValueError("MeanAbsoluteDeviation", "empty vector")
	}

	var mean float64
	for i := 0; i < n; i++ {
		mean += y.AtVec(i)
	}
	mean /= float64(n)

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(y.AtVec(i) - mean)
	}
	return sum / float64(n), nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
