package linear

// config holds the hyperparameters shared by both estimators. It is fixed
// at construction and read-only during fitting.
type config struct {
	fitIntercept bool
	positive     bool
	coefSum      *float64
	tol          float64
	maxEvals     int
}

func defaultConfig() config {
	return config{
		fitIntercept: true,
		tol:          1e-14,
		maxEvals:     200000,
	}
}

// Option configures an estimator at construction time.
type Option func(*config)

// WithFitIntercept sets whether to fit an intercept term (default true).
// Without an intercept the fitted line passes through the origin.
func WithFitIntercept(fit bool) Option {
	return func(c *config) {
		c.fitIntercept = fit
	}
}

// WithPositive constrains every coefficient to be non-negative. The
// intercept is not constrained.
func WithPositive(positive bool) Option {
	return func(c *config) {
		c.positive = positive
	}
}

// WithCoefSum constrains the coefficients to sum to target. The intercept
// does not count toward the sum.
func WithCoefSum(target float64) Option {
	return func(c *config) {
		t := target
		c.coefSum = &t
	}
}

// WithTolerance sets the convergence tolerance of the minimizer.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tol = tol
	}
}

// WithMaxEvaluations caps the number of objective evaluations the
// minimizer may spend across all penalty stages. Exceeding the cap is
// reported as a convergence failure.
func WithMaxEvaluations(n int) Option {
	return func(c *config) {
		c.maxEvals = n
	}
}
