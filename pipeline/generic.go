package pipeline

import (
	"github.com/plotline-org/plotline/chart"
	"github.com/plotline-org/plotline/classify"
	"github.com/plotline-org/plotline/resolve"
	"github.com/plotline-org/plotline/stats"
	"github.com/plotline-org/plotline/table"
)

// ============================================================================
// GENERIC ANALYSIS — Delimited uploads and unknown sources
// ============================================================================
// No fixed role set here: the table's own columns are classified as
// numeric or text by coercion rate, and the intent's analysis type picks
// the computation over the first qualifying columns.
// ============================================================================

// coerce is resolve's numeric coercion, shared by the domain analyses.
func coerce(cell string) (float64, bool) { return resolve.CoerceNumber(cell) }

// analyzeGeneric computes answers for a table with no domain role set.
func analyzeGeneric(tab *table.Table, intent *classify.TaskIntent, render renderFunc, resp *Response) []Answer {
	numeric, text := classifyColumns(tab)

	switch intent.AnalysisType {
	case classify.AnalysisCorrelation, classify.AnalysisRegression, classify.AnalysisVisualization:
		return analyzePaired(tab, intent, numeric, render, resp)
	case classify.AnalysisCount:
		return analyzeCounts(tab, text)
	default:
		return analyzeSummary(tab, numeric, resp)
	}
}

// analyzePaired handles correlation/regression/chart over the first two
// numeric columns.
func analyzePaired(tab *table.Table, intent *classify.TaskIntent, numeric []string, render renderFunc, resp *Response) []Answer {
	points := pairedPoints(tab, numeric)
	resp.CleanPoints = len(points)

	var answers []Answer

	switch intent.AnalysisType {
	case classify.AnalysisCorrelation:
		corr, err := pairedCorrelation(points)
		if err != nil {
			logStage("computed", "%v — substituting 0", err)
			resp.fellBack(StageComputed)
		}
		answers = append(answers, Answer{Name: "correlation", Value: corr, match: []string{"correlation"}})

	case classify.AnalysisRegression:
		if len(points) < 2 {
			logStage("computed", "%v — substituting flat fit", &InsufficientDataError{Needed: 2, Got: len(points)})
			resp.fellBack(StageComputed)
		}
		reg := stats.LinearRegression(points)
		answers = append(answers,
			Answer{Name: "slope", Value: reg.Slope, match: []string{"slope", "regression"}},
			Answer{Name: "intercept", Value: reg.Intercept, match: []string{"intercept"}},
		)
	}

	if intent.VisualizationNeeded || intent.AnalysisType == classify.AnalysisVisualization {
		xLabel, yLabel := "x", "y"
		if len(numeric) >= 2 {
			xLabel, yLabel = numeric[0], numeric[1]
		}
		answers = append(answers, renderScatter(points, chart.Spec{
			Title:  yLabel + " vs " + xLabel,
			XLabel: xLabel,
			YLabel: yLabel,
		}, render, resp))
	}

	return answers
}

// analyzeCounts counts rows and the most common value of the first text
// column.
func analyzeCounts(tab *table.Table, text []string) []Answer {
	answers := []Answer{
		{Name: "row_count", Value: tab.Len(), match: []string{"how many", "count", "number of"}},
	}
	if len(text) > 0 {
		groups := stats.GroupCount(tab.Column(text[0]))
		if top, ok := stats.MostCommon(groups); ok {
			answers = append(answers, Answer{
				Name:  "most_common_" + table.NormalizeKey(text[0]),
				Value: top.Key,
				match: []string{"most common", "most frequent", "which"},
			})
		}
	}
	return answers
}

// analyzeSummary computes descriptive stats over the first numeric
// column.
func analyzeSummary(tab *table.Table, numeric []string, resp *Response) []Answer {
	if len(numeric) == 0 {
		resp.fellBack(StageComputed)
		return []Answer{{Name: "summary", Value: stats.Summary{}, match: []string{"summary", "statistics", "mean", "median"}}}
	}

	values := make([]float64, 0, tab.Len())
	for _, cell := range tab.Column(numeric[0]) {
		if v, ok := coerce(cell); ok {
			values = append(values, v)
		}
	}
	resp.CleanPoints = len(values)

	return []Answer{{
		Name:  "summary_" + table.NormalizeKey(numeric[0]),
		Value: stats.Describe(values),
		match: []string{"summary", "statistics", "mean", "median", "describe"},
	}}
}

// ============================================================================
// COLUMN CLASSIFICATION
// ============================================================================

// classifyColumns splits columns into numeric and text by coercion rate:
// a column where at least half the non-empty cells coerce is numeric.
func classifyColumns(tab *table.Table) (numeric, text []string) {
	for _, col := range tab.Columns() {
		nonEmpty, coercible := 0, 0
		for _, cell := range tab.Column(col) {
			if cell == "" {
				continue
			}
			nonEmpty++
			if _, ok := coerce(cell); ok {
				coercible++
			}
		}
		if nonEmpty > 0 && coercible*2 >= nonEmpty {
			numeric = append(numeric, col)
		} else {
			text = append(text, col)
		}
	}
	return numeric, text
}

// pairedPoints builds (x, y) pairs from the first two numeric columns,
// dropping rows where either side fails coercion.
func pairedPoints(tab *table.Table, numeric []string) []stats.Point {
	if len(numeric) < 2 {
		return nil
	}
	xs := tab.Column(numeric[0])
	ys := tab.Column(numeric[1])

	var points []stats.Point
	for i := range xs {
		x, okX := coerce(xs[i])
		y, okY := coerce(ys[i])
		if okX && okY {
			points = append(points, stats.Point{X: x, Y: y})
		}
	}
	return points
}
