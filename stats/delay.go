package stats

import "sort"

// ============================================================================
// YEARLY DELAY SLOPE
// ============================================================================

// Delay values outside this window are measurement noise (negative spans,
// decade-long outliers) and are discarded before averaging.
const (
	MinDelayDays = 0
	MaxDelayDays = 3650
)

// YearDelay is one observed processing delay in a calendar year.
type YearDelay struct {
	Year  float64
	Delay float64 // days
}

// SlopeByYear averages per-record delays within each calendar year, then
// regresses year against the yearly average. Samples outside the sane
// delay window are dropped first.
func SlopeByYear(samples []YearDelay) Regression {
	return LinearRegression(YearlyAverages(samples))
}

// YearlyAverages exposes the per-year averaged points used by SlopeByYear,
// for plotting the same data the regression saw.
func YearlyAverages(samples []YearDelay) []Point {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, s := range samples {
		if s.Delay < MinDelayDays || s.Delay > MaxDelayDays {
			continue
		}
		sums[s.Year] += s.Delay
		counts[s.Year]++
	}

	years := make([]float64, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Float64s(years)

	points := make([]Point, 0, len(years))
	for _, y := range years {
		points = append(points, Point{X: y, Y: sums[y] / float64(counts[y])})
	}
	return points
}
