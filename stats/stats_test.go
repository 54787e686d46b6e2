package stats

import (
	"math"
	"testing"
)

// ============================================================================
// STATS ENGINE TESTS
// ============================================================================

func TestPearsonSymmetry(t *testing.T) {
	xs := []float64{1, 2, 3, 5, 8}
	ys := []float64{2, 1, 4, 4, 9}

	ab := Pearson(xs, ys)
	ba := Pearson(ys, xs)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("Pearson not symmetric: %v vs %v", ab, ba)
	}
}

func TestPearsonSelfCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	if got := Pearson(xs, xs); math.Abs(got-1) > 1e-12 {
		t.Errorf("Pearson(xs, xs) = %v, want 1", got)
	}
}

func TestPearsonDegenerate(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
	}{
		{"constant x", []float64{5, 5, 5}, []float64{1, 2, 3}},
		{"constant y", []float64{1, 2, 3}, []float64{7, 7, 7}},
		{"single pair", []float64{1}, []float64{2}},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.xs, tt.ys)
			if got != 0 {
				t.Errorf("Pearson = %v, want 0", got)
			}
		})
	}
}

func TestLinearRegressionPerfectLine(t *testing.T) {
	reg := LinearRegression([]Point{{1, 1}, {2, 2}, {3, 3}})
	if math.Abs(reg.Slope-1) > 1e-9 {
		t.Errorf("Slope = %v, want 1", reg.Slope)
	}
	if math.Abs(reg.Intercept) > 1e-9 {
		t.Errorf("Intercept = %v, want 0", reg.Intercept)
	}
}

func TestLinearRegressionConstantX(t *testing.T) {
	reg := LinearRegression([]Point{{5, 1}, {5, 2}, {5, 3}})
	if reg.Slope != 0 {
		t.Errorf("constant-x Slope = %v, want 0 (never NaN/Inf)", reg.Slope)
	}
	if math.Abs(reg.Intercept-2) > 1e-9 {
		t.Errorf("constant-x Intercept = %v, want mean(y) = 2", reg.Intercept)
	}
}

func TestLinearRegressionTooFewPoints(t *testing.T) {
	reg := LinearRegression([]Point{{1, 4}})
	if reg.Slope != 0 || reg.Intercept != 4 {
		t.Errorf("single point = %+v, want slope 0, intercept 4", reg)
	}
}

func TestRegressionLineEndpoints(t *testing.T) {
	points := []Point{{3, 0}, {1, 0}, {7, 0}, {5, 0}}
	line := RegressionLine(points, Regression{Slope: 2, Intercept: 1})

	if line[0].X != 1 || line[0].Y != 3 {
		t.Errorf("left endpoint = %+v, want (1, 3)", line[0])
	}
	if line[1].X != 7 || line[1].Y != 15 {
		t.Errorf("right endpoint = %+v, want (7, 15)", line[1])
	}
}

func TestGroupCountOrder(t *testing.T) {
	groups := GroupCount([]string{"b", "a", "b", "c", "a", "b"})
	want := []GroupN{{"b", 3}, {"a", 2}, {"c", 1}}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("group[%d] = %v, want %v", i, groups[i], want[i])
		}
	}
}

func TestMostCommonTieBreaksFirstEncountered(t *testing.T) {
	// "y" and "x" tie at 2; "y" appeared first in row order and must win.
	groups := GroupCount([]string{"y", "x", "x", "y"})
	top, ok := MostCommon(groups)
	if !ok {
		t.Fatal("MostCommon returned no group")
	}
	if top.Key != "y" {
		t.Errorf("tie-break winner = %q, want %q (first encountered)", top.Key, "y")
	}
}

func TestDescribeUpperMiddleMedian(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})
	if s.Median != 3 {
		t.Errorf("even-count Median = %v, want 3 (upper-middle element)", s.Median)
	}
	if s.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", s.Mean)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("Min/Max = %v/%v, want 1/4", s.Min, s.Max)
	}
	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
}

func TestDescribePopulationStdDev(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(s.StdDev-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2 (population, not sample)", s.StdDev)
	}
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	if s.Count != 0 || s.Mean != 0 || s.StdDev != 0 {
		t.Errorf("empty Describe = %+v, want zero value", s)
	}
}

func TestSlopeByYear(t *testing.T) {
	samples := []YearDelay{
		{2019, 100}, {2019, 200}, // avg 150
		{2020, 200}, {2020, 300}, // avg 250
		{2021, 350},              // avg 350
		{2020, -5},               // negative span — discarded
		{2021, 9000},             // outlier beyond window — discarded
	}

	reg := SlopeByYear(samples)
	if math.Abs(reg.Slope-100) > 1e-9 {
		t.Errorf("Slope = %v, want 100 days/year", reg.Slope)
	}
}

func TestSlopeByYearSingleYear(t *testing.T) {
	reg := SlopeByYear([]YearDelay{{2020, 10}, {2020, 20}})
	if reg.Slope != 0 {
		t.Errorf("single-year Slope = %v, want 0", reg.Slope)
	}
	if reg.Intercept != 15 {
		t.Errorf("single-year Intercept = %v, want 15", reg.Intercept)
	}
}
