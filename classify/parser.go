package classify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// RESPONSE PARSER — Extracts TaskIntent from model output
// ============================================================================

// parseIntent extracts a TaskIntent from the model's JSON response,
// stripping Markdown code fences first.
func parseIntent(response string) (*TaskIntent, error) {
	response = stripFences(response)

	var intent TaskIntent
	if err := json.Unmarshal([]byte(response), &intent); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w (response: %.200s)", err, response)
	}

	return normalizeIntent(&intent), nil
}

// stripFences removes ```json ... ``` wrappers models add despite being
// told not to.
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// normalizeIntent maps unknown enum values onto defaults so a creative
// model answer still yields a valid intent.
func normalizeIntent(intent *TaskIntent) *TaskIntent {
	switch intent.DataSource {
	case SourceWikipedia, SourceCourtData, SourceCSV:
	default:
		intent.DataSource = SourceUnknown
	}

	switch intent.AnalysisType {
	case AnalysisCorrelation, AnalysisRegression, AnalysisCount, AnalysisVisualization:
	default:
		intent.AnalysisType = AnalysisSummary
	}

	switch intent.ExpectedOutputFormat {
	case FormatJSONObject, FormatBase64Image:
	default:
		intent.ExpectedOutputFormat = FormatJSONArray
	}

	return intent
}
