package classify

import (
	"context"
	"regexp"
	"strings"
)

// ============================================================================
// KEYWORD STRATEGY — Deterministic classification
// ============================================================================
// Lower-cases the task text and tests fixed keyword sets per field. Fully
// specified and dependency-free, so it is the system of record for tests
// and the fallback for the delegated strategy.
// ============================================================================

// Keyword is the deterministic classifier.
type Keyword struct{}

// Classify never fails; unknown tasks classify to a safe default intent.
func (Keyword) Classify(_ context.Context, task string) (*TaskIntent, error) {
	lower := strings.ToLower(task)

	intent := &TaskIntent{
		DataSource:           detectSource(lower),
		AnalysisType:         detectAnalysis(lower),
		ExpectedOutputFormat: detectFormat(lower),
		VisualizationNeeded:  containsAny(lower, visualizationWords),
		Questions:            ExtractQuestions(task),
	}
	return intent, nil
}

var (
	wikipediaWords     = []string{"wikipedia", "highest-grossing", "highest grossing", "films"}
	courtWords         = []string{"court", "judgment", "judgement", "bench"}
	csvWords           = []string{"csv", "uploaded file", "attached data", "dataset"}
	correlationWords   = []string{"correlation", "correlate"}
	regressionWords    = []string{"regression", "slope", "trend line"}
	countWords         = []string{"how many", "count", "number of"}
	visualizationWords = []string{"plot", "chart", "scatter", "graph", "visualiz", "visualis", "draw"}
)

func detectSource(lower string) DataSource {
	switch {
	case containsAny(lower, wikipediaWords):
		return SourceWikipedia
	case containsAny(lower, courtWords):
		return SourceCourtData
	case containsAny(lower, csvWords):
		return SourceCSV
	default:
		return SourceUnknown
	}
}

// detectAnalysis picks the primary computation. A task that asks for a
// correlation AND a scatterplot is a correlation task that also needs a
// chart, so statistical keywords outrank visualization keywords.
func detectAnalysis(lower string) AnalysisType {
	switch {
	case containsAny(lower, correlationWords):
		return AnalysisCorrelation
	case containsAny(lower, regressionWords):
		return AnalysisRegression
	case containsAny(lower, countWords):
		return AnalysisCount
	case containsAny(lower, visualizationWords):
		return AnalysisVisualization
	default:
		return AnalysisSummary
	}
}

func detectFormat(lower string) OutputFormat {
	switch {
	case strings.Contains(lower, "json object"):
		return FormatJSONObject
	case strings.Contains(lower, "json array"):
		return FormatJSONArray
	case strings.Contains(lower, "base64"):
		return FormatBase64Image
	default:
		return FormatJSONArray
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ============================================================================
// QUESTION EXTRACTION
// ============================================================================

// numberedQuestion matches one numbered-list question: "3. Which ... ?"
var numberedQuestion = regexp.MustCompile(`(?m)^\s*\d+\.\s*(.+?\?)`)

// ExtractQuestions pulls the user's literal questions out of the task
// text, in order, using the numbered-list pattern. Tasks without a
// numbered list yield nil — the coordinator then treats the whole task as
// a single question.
func ExtractQuestions(task string) []string {
	matches := numberedQuestion.FindAllStringSubmatch(task, -1)
	if len(matches) == 0 {
		return nil
	}
	questions := make([]string, 0, len(matches))
	for _, m := range matches {
		questions = append(questions, strings.TrimSpace(m[1]))
	}
	return questions
}
