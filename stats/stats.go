package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// STATS ENGINE — Pure functions over points and numeric sequences
// ============================================================================
// Every function is stateless and NaN-free at the boundary: any internal
// division that produces a non-finite value is normalized to 0 before it
// reaches a caller. Degenerate inputs (too few points, constant x) get
// documented degenerate outputs, never NaN/Inf.
// ============================================================================

// Point is a single (x, y) observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Regression is a fitted least-squares line.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Pearson computes the correlation coefficient of two equal-length
// sequences. Fewer than 2 pairs, zero variance on either side, or a
// non-finite result all yield 0.
func Pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	return finite(stat.Correlation(xs, ys, nil))
}

// LinearRegression fits an ordinary least-squares line through points.
// With fewer than 2 points or constant x it returns slope 0 and intercept
// mean(y).
func LinearRegression(points []Point) Regression {
	xs, ys := split(points)

	if len(points) < 2 || constant(xs) {
		return Regression{Slope: 0, Intercept: finite(stat.Mean(ys, nil))}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return Regression{Slope: 0, Intercept: finite(stat.Mean(ys, nil))}
	}
	return Regression{Slope: slope, Intercept: intercept}
}

// RegressionLine evaluates a fitted line at min(x) and max(x), returning
// exactly the two endpoints needed to draw it. It is a 2-point overlay,
// not a curve sampled at every x.
func RegressionLine(points []Point, reg Regression) [2]Point {
	if len(points) == 0 {
		return [2]Point{}
	}
	minX, maxX := points[0].X, points[0].X
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}
	return [2]Point{
		{X: minX, Y: reg.Intercept + reg.Slope*minX},
		{X: maxX, Y: reg.Intercept + reg.Slope*maxX},
	}
}

// ============================================================================
// GROUP COUNTS
// ============================================================================

// GroupN is a distinct group value with its record count.
type GroupN struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// GroupCount counts occurrences per distinct value, preserving
// first-encountered order.
func GroupCount(values []string) []GroupN {
	index := make(map[string]int)
	var groups []GroupN
	for _, v := range values {
		if i, ok := index[v]; ok {
			groups[i].Count++
			continue
		}
		index[v] = len(groups)
		groups = append(groups, GroupN{Key: v, Count: 1})
	}
	return groups
}

// MostCommon returns the group with the highest count. Ties break toward
// the group encountered first in row order — a deliberate, tested policy.
func MostCommon(groups []GroupN) (GroupN, bool) {
	if len(groups) == 0 {
		return GroupN{}, false
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.Count > best.Count {
			best = g
		}
	}
	return best, true
}

// ============================================================================
// DESCRIPTIVE STATS
// ============================================================================

// Summary holds descriptive statistics for a numeric sequence.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// Describe computes count, mean, median, min, max, and population standard
// deviation. For an even count the median is the upper-middle element of
// the ascending sort, not the average of the two middles — a documented
// quirk that callers and tests rely on.
func Describe(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := finite(stat.Mean(sorted, nil))

	// Population variance, not gonum's sample variance.
	var ss float64
	for _, v := range sorted {
		d := v - mean
		ss += d * d
	}

	return Summary{
		Count:  n,
		Mean:   mean,
		Median: sorted[n/2],
		Min:    sorted[0],
		Max:    sorted[n-1],
		StdDev: finite(math.Sqrt(ss / float64(n))),
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func split(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finite normalizes NaN/Inf to 0 per the engine-wide policy.
func finite(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
