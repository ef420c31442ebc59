package preprocessing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/robustfit/robustfit/pkg/errors"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTimeFeatures(t *testing.T) {
	index := []time.Time{
		date(1988, time.August, 8),
		date(2000, time.January, 1),
		date(1950, time.December, 31),
	}

	tf := &TimeFeatures{DayOfMonth: true, Month: true, Year: true}
	require.NoError(t, tf.Fit(index))
	assert.Equal(t, []string{"day_of_month", "month", "year"}, tf.FeatureNames())

	out, err := tf.Transform(index)
	require.NoError(t, err)

	expected := mat.NewDense(3, 3, []float64{
		8, 8, 1988,
		1, 1, 2000,
		31, 12, 1950,
	})
	assert.True(t, mat.EqualApprox(expected, out, 1e-12))
}

func TestTimeFeaturesWeekday(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-07 a Sunday.
	tf := &TimeFeatures{DayOfWeek: true, WeekOfMonth: true}
	index := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.January, 8),
	}
	require.NoError(t, tf.Fit(index))

	out, err := tf.Transform(index)
	require.NoError(t, err)

	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 7.0, out.At(1, 0))
	assert.Equal(t, 1.0, out.At(2, 0))

	// Days 1-7 are week 1, day 8 starts week 2.
	assert.Equal(t, 1.0, out.At(0, 1))
	assert.Equal(t, 1.0, out.At(1, 1))
	assert.Equal(t, 2.0, out.At(2, 1))
}

func TestTimeFeaturesRequiresSelection(t *testing.T) {
	tf := &TimeFeatures{}
	err := tf.Fit([]time.Time{date(2024, time.January, 1)})
	require.Error(t, err)

	var ce *errors.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}

func TestTimeFeaturesNotFitted(t *testing.T) {
	tf := &TimeFeatures{Hour: true}
	_, err := tf.Transform([]time.Time{date(2024, time.January, 1)})

	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
}

func TestCyclicalEncoderHours(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{22, 23, 0, 1, 2})

	enc := NewCyclicalEncoder(CycleHour)
	require.NoError(t, enc.Fit(X))

	out, err := enc.Transform(X)
	require.NoError(t, err)

	// Reference values for the 24-hour circle.
	expected := [][2]float64{
		{0.866025, -0.500000},
		{0.965926, -0.258819},
		{1.000000, 0.000000},
		{0.965926, 0.258819},
		{0.866025, 0.500000},
	}
	for i, e := range expected {
		assert.InDelta(t, e[0], out.At(i, 0), 1e-6, "cos row %d", i)
		assert.InDelta(t, e[1], out.At(i, 1), 1e-6, "sin row %d", i)
	}
}

func TestCyclicalEncoderKeepsNeighborsClose(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 23, 12})

	enc := NewCyclicalEncoder(CycleHour)
	require.NoError(t, enc.Fit(X))
	out, err := enc.Transform(X)
	require.NoError(t, err)

	dist := func(a, b int) float64 {
		dc := out.At(a, 0) - out.At(b, 0)
		ds := out.At(a, 1) - out.At(b, 1)
		return math.Hypot(dc, ds)
	}

	// Hour 23 is closer to hour 0 than hour 12 is.
	assert.Less(t, dist(0, 1), dist(0, 2))
}

func TestCyclicalEncoderValidation(t *testing.T) {
	var ce *errors.ConfigurationError
	err := NewCyclicalEncoder().Fit(mat.NewDense(1, 1, []float64{1}))
	assert.True(t, errors.As(err, &ce))

	err = NewCyclicalEncoder(Cycle{Min: 5, Max: 5}).Fit(mat.NewDense(1, 1, []float64{1}))
	assert.True(t, errors.As(err, &ce))

	var de *errors.DimensionError
	err = NewCyclicalEncoder(CycleHour).Fit(mat.NewDense(1, 2, []float64{1, 2}))
	assert.True(t, errors.As(err, &de))
}

func TestDateIndicator(t *testing.T) {
	blackFridays := []time.Time{
		date(2020, time.November, 27),
		date(2021, time.November, 26),
	}
	ind := NewDateIndicator("black_friday", blackFridays)
	require.NoError(t, ind.Fit(nil))
	assert.Equal(t, "black_friday", ind.Name())

	index := []time.Time{
		date(2020, time.November, 26),
		date(2020, time.November, 27),
		date(2021, time.November, 26),
	}
	out, err := ind.Transform(index)
	require.NoError(t, err)

	assert.Equal(t, 0.0, out.At(0, 0))
	assert.Equal(t, 1.0, out.At(1, 0))
	assert.Equal(t, 1.0, out.At(2, 0))
}

func TestPowerTrend(t *testing.T) {
	origin := date(1988, time.August, 6)
	trend := NewPowerTrend(2, 24*time.Hour, origin)
	require.NoError(t, trend.Fit(nil))

	index := []time.Time{
		date(1988, time.August, 6),
		date(1988, time.August, 8),
		date(1988, time.August, 10),
	}
	out, err := trend.Transform(index)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 4.0, out.At(1, 0), 1e-12)
	assert.InDelta(t, 16.0, out.At(2, 0), 1e-12)
}

func TestPowerTrendValidation(t *testing.T) {
	trend := NewPowerTrend(1, 0, time.Time{})
	err := trend.Fit(nil)

	var ce *errors.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}
