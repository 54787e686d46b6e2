package classify

import "fmt"

// ============================================================================
// PROMPT BUILDER — Constrained prompt for the delegated strategy
// ============================================================================
// The model is a CLASSIFIER ONLY: it sees the task text, never any data,
// and must answer with a single JSON object matching the TaskIntent
// shape. Everything downstream is computed locally.
// ============================================================================

const promptTemplate = `You are a task classifier for a data analysis pipeline.

YOUR ROLE:
Classify the user's analysis task into a structured intent descriptor.
You are a CLASSIFIER ONLY — do NOT answer the questions or compute any values.
A local computation engine will do all the work.

RESPOND WITH EXACTLY ONE JSON OBJECT, NO PROSE, NO CODE FENCES:
{
  "dataSource": "wikipedia" | "court_data" | "csv" | "unknown",
  "analysisType": "correlation" | "regression" | "count" | "visualization" | "statistical_summary",
  "expectedOutputFormat": "json_array" | "json_object" | "base64_image",
  "visualizationNeeded": true | false,
  "questions": ["each literal question from the task, in order"]
}

RULES:
- "dataSource": where the data lives. Scraping a Wikipedia page = "wikipedia".
  Indian high court judgment datasets = "court_data". An uploaded or attached
  tabular file = "csv". Anything else = "unknown".
- "analysisType": the PRIMARY computation. A task asking for a correlation and
  a scatterplot is "correlation" with "visualizationNeeded": true.
- "expectedOutputFormat": "json_array" when the task asks for answers as an
  ordered array, "json_object" for question→answer mappings, "base64_image"
  when the only deliverable is an encoded chart.
- "questions": copy the user's questions verbatim; do not rephrase.

TASK:
%s

Respond with valid JSON only:`

// buildPrompt produces the full classification prompt for one task.
func buildPrompt(task string) string {
	return fmt.Sprintf(promptTemplate, task)
}
