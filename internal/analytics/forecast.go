package analytics

import "math"

// Trend labels derived from the expense slope.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Fit is an ordinary-least-squares line over a monthly series indexed 1..N.
// The model is deliberately a simple univariate trend, not real statistics.
type Fit struct {
	Slope     float64
	Intercept float64
}

// FitLinear fits a line to the samples. Fewer than two samples cannot carry
// a trend: slope is 0 and the intercept is the sole sample, or 0.
func FitLinear(samples []float64) Fit {
	n := len(samples)
	if n < 2 {
		if n == 1 {
			return Fit{Intercept: samples[0]}
		}
		return Fit{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range samples {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn
	return Fit{Slope: slope, Intercept: intercept}
}

// Project evaluates the fitted line at the given period index, clamped at
// zero: a projected income or expense is never negative.
func (f Fit) Project(period int) float64 {
	return math.Max(0, f.Slope*float64(period)+f.Intercept)
}

// Trend labels the fit by its slope direction.
func (f Fit) Trend() string {
	if f.Slope > 0 {
		return TrendIncreasing
	}
	return TrendDecreasing
}
