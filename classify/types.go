package classify

import (
	"context"
	"fmt"
)

// ============================================================================
// TASK CLASSIFIER — Free-text task → structured TaskIntent
// ============================================================================
// Two interchangeable strategies sit behind one contract: a delegated
// strategy that asks an external text-generation service for a
// constrained JSON object, and a deterministic keyword strategy with no
// external dependency. Both produce the same TaskIntent shape, and the
// deterministic strategy is always available as the guaranteed fallback —
// classification can degrade in quality but never fail a task.
// ============================================================================

// DataSource says where the task's data lives.
type DataSource string

const (
	SourceWikipedia DataSource = "wikipedia"
	SourceCourtData DataSource = "court_data"
	SourceCSV       DataSource = "csv"
	SourceUnknown   DataSource = "unknown"
)

// AnalysisType is the primary computation the task asks for.
type AnalysisType string

const (
	AnalysisCorrelation   AnalysisType = "correlation"
	AnalysisRegression    AnalysisType = "regression"
	AnalysisCount         AnalysisType = "count"
	AnalysisVisualization AnalysisType = "visualization"
	AnalysisSummary       AnalysisType = "statistical_summary"
)

// OutputFormat is the response shape the task expects.
type OutputFormat string

const (
	FormatJSONArray   OutputFormat = "json_array"
	FormatJSONObject  OutputFormat = "json_object"
	FormatBase64Image OutputFormat = "base64_image"
)

// TaskIntent is the structured classification of one analysis task.
// Produced once per task, read-only afterward.
type TaskIntent struct {
	DataSource           DataSource   `json:"dataSource"`
	AnalysisType         AnalysisType `json:"analysisType"`
	ExpectedOutputFormat OutputFormat `json:"expectedOutputFormat"`
	VisualizationNeeded  bool         `json:"visualizationNeeded"`
	Questions            []string     `json:"questions"`
}

// Classifier maps a natural-language task to a TaskIntent.
// Implementations: Gemini (delegated), Keyword (deterministic fallback).
type Classifier interface {
	Classify(ctx context.Context, task string) (*TaskIntent, error)
}

// ClassificationError reports malformed structured output from the
// delegated classifier. It is logged and absorbed at the component
// boundary — the keyword fallback answers instead.
type ClassificationError struct {
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classification failed: %s", e.Reason)
}

func (e *ClassificationError) Unwrap() error { return e.Err }
