// Package preprocessing provides feature builders that turn timestamps
// into numeric matrices consumable by the estimators in this library.
package preprocessing

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/robustfit/robustfit/core/model"
	"github.com/robustfit/robustfit/pkg/errors"
)

// TimeFeatures extracts calendar columns from a series of timestamps.
// Enable a field to emit its column; the column order is fixed (second,
// minute, hour, day_of_week, day_of_month, day_of_year, week_of_month,
// week_of_year, month, year) and stable across calls.
//
// day_of_week runs Monday=1 through Sunday=7 and week_of_month is
// ceil(day_of_month / 7).
type TimeFeatures struct {
	model.BaseEstimator

	Second      bool
	Minute      bool
	Hour        bool
	DayOfWeek   bool
	DayOfMonth  bool
	DayOfYear   bool
	WeekOfMonth bool
	WeekOfYear  bool
	Month       bool
	Year        bool
}

// Fit is a no-op that marks the transformer ready; the extraction is
// stateless.
func (t *TimeFeatures) Fit(index []time.Time) error {
	if len(t.FeatureNames()) == 0 {
		return errors.NewConfigurationError("TimeFeatures", "features", "at least one feature must be enabled", nil)
	}
	t.SetFitted()
	return nil
}

// FeatureNames returns the names of the enabled columns in output order.
func (t *TimeFeatures) FeatureNames() []string {
	var names []string
	for _, f := range t.extractors() {
		names = append(names, f.name)
	}
	return names
}

// Transform extracts one row per timestamp.
func (t *TimeFeatures) Transform(index []time.Time) (*mat.Dense, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("TimeFeatures", "Transform")
	}
	if len(index) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "TimeFeatures.Transform")
	}

	extractors := t.extractors()
	out := mat.NewDense(len(index), len(extractors), nil)
	for i, ts := range index {
		for j, f := range extractors {
			out.Set(i, j, f.extract(ts))
		}
	}
	return out, nil
}

type timeExtractor struct {
	name    string
	extract func(time.Time) float64
}

func (t *TimeFeatures) extractors() []timeExtractor {
	var fs []timeExtractor
	add := func(enabled bool, name string, extract func(time.Time) float64) {
		if enabled {
			fs = append(fs, timeExtractor{name: name, extract: extract})
		}
	}

	add(t.Second, "second", func(ts time.Time) float64 { return float64(ts.Second()) })
	add(t.Minute, "minute", func(ts time.Time) float64 { return float64(ts.Minute()) })
	add(t.Hour, "hour", func(ts time.Time) float64 { return float64(ts.Hour()) })
	add(t.DayOfWeek, "day_of_week", func(ts time.Time) float64 { return float64(isoWeekday(ts)) })
	add(t.DayOfMonth, "day_of_month", func(ts time.Time) float64 { return float64(ts.Day()) })
	add(t.DayOfYear, "day_of_year", func(ts time.Time) float64 { return float64(ts.YearDay()) })
	add(t.WeekOfMonth, "week_of_month", func(ts time.Time) float64 {
		return math.Ceil(float64(ts.Day()) / 7)
	})
	add(t.WeekOfYear, "week_of_year", func(ts time.Time) float64 {
		_, week := ts.ISOWeek()
		return float64(week)
	})
	add(t.Month, "month", func(ts time.Time) float64 { return float64(ts.Month()) })
	add(t.Year, "year", func(ts time.Time) float64 { return float64(ts.Year()) })
	return fs
}

// isoWeekday maps Monday to 1 through Sunday to 7.
func isoWeekday(ts time.Time) int {
	wd := int(ts.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Cycle describes the value range of a cyclic feature, e.g. hours run
// from 0 to 23.
type Cycle struct {
	Min float64
	Max float64
}

// Common cycles of calendar features.
var (
	CycleSecond      = Cycle{Min: 0, Max: 59}
	CycleMinute      = Cycle{Min: 0, Max: 59}
	CycleHour        = Cycle{Min: 0, Max: 23}
	CycleDayOfWeek   = Cycle{Min: 1, Max: 7}
	CycleDayOfMonth  = Cycle{Min: 1, Max: 31}
	CycleDayOfYear   = Cycle{Min: 1, Max: 366}
	CycleWeekOfMonth = Cycle{Min: 1, Max: 5}
	CycleWeekOfYear  = Cycle{Min: 1, Max: 53}
	CycleMonth       = Cycle{Min: 1, Max: 12}
)

// CyclicalEncoder maps each cyclic input column onto a circle, emitting a
// cosine and a sine column in its place. Close points in time stay close
// in feature space: hour 23 ends up next to hour 0 instead of at the
// opposite end of the range.
//
// The angle of value x in a cycle is (x - min) / (max + 1 - min) · 2π, so
// the largest value does not collide with the smallest one.
type CyclicalEncoder struct {
	model.BaseEstimator

	cycles []Cycle
}

// NewCyclicalEncoder creates an encoder for a matrix with one cyclic
// column per given cycle, in column order.
func NewCyclicalEncoder(cycles ...Cycle) *CyclicalEncoder {
	return &CyclicalEncoder{cycles: cycles}
}

// Fit validates the configured cycles; nothing is learned from X.
func (e *CyclicalEncoder) Fit(X mat.Matrix) error {
	if len(e.cycles) == 0 {
		return errors.NewConfigurationError("CyclicalEncoder", "cycles", "at least one cycle is required", nil)
	}
	for _, c := range e.cycles {
		if c.Max <= c.Min {
			return errors.NewConfigurationError("CyclicalEncoder", "cycles", "cycle max must exceed min", c)
		}
	}
	_, cols := X.Dims()
	if cols != len(e.cycles) {
		return errors.NewDimensionError("CyclicalEncoder.Fit", len(e.cycles), cols, 1)
	}
	e.SetFitted()
	return nil
}

// Transform returns a matrix with a cos and a sin column for each input
// column, ordered (cos_0, sin_0, cos_1, sin_1, ...).
func (e *CyclicalEncoder) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("CyclicalEncoder", "Transform")
	}

	rows, cols := X.Dims()
	if cols != len(e.cycles) {
		return nil, errors.NewDimensionError("CyclicalEncoder.Transform", len(e.cycles), cols, 1)
	}
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "CyclicalEncoder.Transform")
	}

	out := mat.NewDense(rows, 2*cols, nil)
	for j, c := range e.cycles {
		span := c.Max + 1 - c.Min
		for i := 0; i < rows; i++ {
			angle := (X.At(i, j) - c.Min) / span * 2 * math.Pi
			out.Set(i, 2*j, math.Cos(angle))
			out.Set(i, 2*j+1, math.Sin(angle))
		}
	}
	return out, nil
}

// DateIndicator emits a single 0/1 column marking the timestamps that
// fall on one of the listed dates, e.g. Black Friday.
type DateIndicator struct {
	model.BaseEstimator

	name  string
	dates map[string]struct{}
}

const dateIndicatorLayout = "2006-01-02"

// NewDateIndicator creates an indicator named name for the given dates.
// Timestamps match on their calendar date, not the time of day.
func NewDateIndicator(name string, dates []time.Time) *DateIndicator {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d.Format(dateIndicatorLayout)] = struct{}{}
	}
	return &DateIndicator{name: name, dates: set}
}

// Name returns the indicator's column name.
func (d *DateIndicator) Name() string {
	return d.name
}

// Fit validates the configuration; nothing is learned from the index.
func (d *DateIndicator) Fit(index []time.Time) error {
	if len(d.dates) == 0 {
		return errors.NewConfigurationError("DateIndicator", "dates", "at least one date is required", nil)
	}
	d.SetFitted()
	return nil
}

// Transform returns an n×1 matrix holding 1 for matching dates, else 0.
func (d *DateIndicator) Transform(index []time.Time) (*mat.Dense, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("DateIndicator", "Transform")
	}
	if len(index) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "DateIndicator.Transform")
	}

	out := mat.NewDense(len(index), 1, nil)
	for i, ts := range index {
		if _, ok := d.dates[ts.Format(dateIndicatorLayout)]; ok {
			out.Set(i, 0, 1)
		}
	}
	return out, nil
}

// PowerTrend emits a single trend column ((t - origin) / frequency)^power,
// e.g. a linear trend with power 1 or a saturating one with power 0.5.
// Useful for letting a linear model capture long-term growth.
type PowerTrend struct {
	model.BaseEstimator

	power     float64
	frequency time.Duration
	origin    time.Time
}

// NewPowerTrend creates a trend transformer counting frequency-sized
// steps from origin and raising them to power.
func NewPowerTrend(power float64, frequency time.Duration, origin time.Time) *PowerTrend {
	return &PowerTrend{power: power, frequency: frequency, origin: origin}
}

// Fit validates the configuration; nothing is learned from the index.
func (p *PowerTrend) Fit(index []time.Time) error {
	if p.frequency <= 0 {
		return errors.NewConfigurationError("PowerTrend", "frequency", "must be strictly positive", p.frequency)
	}
	p.SetFitted()
	return nil
}

// Transform returns an n×1 matrix with the trend value per timestamp.
func (p *PowerTrend) Transform(index []time.Time) (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PowerTrend", "Transform")
	}
	if len(index) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "PowerTrend.Transform")
	}

	out := mat.NewDense(len(index), 1, nil)
	for i, ts := range index {
		steps := float64(ts.Sub(p.origin)) / float64(p.frequency)
		out.Set(i, 0, math.Pow(steps, p.power))
	}
	return out, nil
}
