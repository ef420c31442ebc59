// Package diagnostics renders standard diagnostic plots for fitted
// regression models.
package diagnostics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/robustfit/robustfit/pkg/errors"
)

// ResidualPlot writes a residual-versus-predicted scatter plot to path.
// A fit biased toward one error direction shows up as a point cloud
// shifted off the zero line.
func ResidualPlot(yTrue, yPred *mat.VecDense, path string) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewValueError("ResidualPlot", "empty vector")
	}
	if yPred.Len() != n {
		return errors.NewDimensionError("ResidualPlot", n, yPred.Len(), 0)
	}

	points := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		points[i].X = yPred.AtVec(i)
		points[i].Y = yTrue.AtVec(i) - yPred.AtVec(i)
	}

	p := plot.New()
	p.Title.Text = "Residuals vs. predicted"
	p.X.Label.Text = "predicted"
	p.Y.Label.Text = "residual"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "ResidualPlot: scatter")
	}
	p.Add(scatter)

	zero, err := plotter.NewLine(plotter.XYs{
		{X: p.X.Min, Y: 0},
		{X: p.X.Max, Y: 0},
	})
	if err != nil {
		return errors.Wrap(err, "ResidualPlot: zero line")
	}
	p.Add(zero)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "ResidualPlot: save")
	}
	return nil
}

// PredictionPlot writes an actual-versus-predicted scatter plot to path.
// A perfect model puts every point on the diagonal.
func PredictionPlot(yTrue, yPred *mat.VecDense, path string) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewValueError("PredictionPlot", "empty vector")
	}
	if yPred.Len() != n {
		return errors.NewDimensionError("PredictionPlot", n, yPred.Len(), 0)
	}

	points := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		points[i].X = yTrue.AtVec(i)
		points[i].Y = yPred.AtVec(i)
	}

	p := plot.New()
	p.Title.Text = "Actual vs. predicted"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "PredictionPlot: scatter")
	}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "PredictionPlot: save")
	}
	return nil
}
