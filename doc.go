// Package robustfit provides linear regression estimators for loss
// functions that ordinary least-squares solvers cannot handle, with a
// scikit-learn-like fit/predict API on gonum matrices.
//
// The two estimators are LADRegression, which minimizes the mean absolute
// residual and is robust against outliers, and ImbalancedRegression, which
// penalizes overestimation and underestimation with different weights so
// the fitted line can be biased deliberately toward one error direction.
// Both delegate the numerical search to a derivative-free minimizer and
// support non-negativity and coefficient-sum constraints.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/robustfit/robustfit/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//
//	    model := linear.NewLADRegression()
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    XTest := mat.NewDense(1, 1, []float64{5})
//	    predictions, err := model.Predict(XTest)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(predictions)) // ≈ [10]
//	}
//
// # Packages
//
//   - linear: the estimators, their losses, constraints and the
//     minimization driver
//   - metrics: regression metrics (MSE, RMSE, MAE, R², MAPE, SMAPE,
//     directional accuracy, mean absolute deviation)
//   - preprocessing: time-based feature builders (calendar columns,
//     cyclical encoding, date indicators, power trends)
//   - diagnostics: residual and prediction plots
//   - core/model: estimator interfaces and fitted-state tracking
//   - pkg/errors, pkg/log: structured errors and logging
package robustfit
