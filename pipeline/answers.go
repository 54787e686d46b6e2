package pipeline

import (
	"strings"

	"github.com/plotline-org/plotline/classify"
)

// ============================================================================
// ANSWERS — Named results and question matching
// ============================================================================

// Answer is one computed, named result of a pipeline run.
type Answer struct {
	// Name is the stable result name ("correlation", "chart", ...), used
	// as the object key when the task carried no literal questions.
	Name  string
	Value any

	// match ties extracted questions to this answer: a question containing
	// any of these lowercase words asks for this result.
	match []string
}

// matches reports whether a question asks for this answer.
func (a Answer) matches(question string) bool {
	lower := strings.ToLower(question)
	for _, w := range a.match {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// assemble shapes the final Answers payload per the declared format.
//
// Policy: json_array → positional values in the order the questions were
// asked; otherwise exactly one named result returns its bare value, and
// several return a name→value (or question→value) mapping.
func assemble(resp *Response, intent *classify.TaskIntent, answers []Answer) {
	resp.Format = intent.ExpectedOutputFormat

	if len(answers) == 0 {
		if intent.ExpectedOutputFormat == classify.FormatJSONArray {
			resp.Answers = []any{}
		} else {
			resp.Answers = map[string]any{}
		}
		return
	}

	switch intent.ExpectedOutputFormat {
	case classify.FormatJSONArray:
		resp.Answers = orderByQuestions(intent.Questions, answers)

	case classify.FormatBase64Image:
		// The deliverable is the chart; everything else is discarded.
		for _, a := range answers {
			if a.Name == "chart" {
				resp.Answers = a.Value
				return
			}
		}
		resp.Answers = answers[0].Value

	default: // json_object
		if len(answers) == 1 {
			resp.Answers = answers[0].Value
			return
		}
		out := make(map[string]any, len(answers))
		used := make([]bool, len(answers))
		for _, q := range intent.Questions {
			for i, a := range answers {
				if !used[i] && a.matches(q) {
					out[q] = a.Value
					used[i] = true
					break
				}
			}
		}
		for i, a := range answers {
			if !used[i] {
				out[a.Name] = a.Value
			}
		}
		resp.Answers = out
	}
}

// orderByQuestions lines answers up with the questions that asked for
// them. Questions nothing matches consume the first unused answer so the
// array keeps its declared length.
func orderByQuestions(questions []string, answers []Answer) []any {
	if len(questions) == 0 {
		out := make([]any, len(answers))
		for i, a := range answers {
			out[i] = a.Value
		}
		return out
	}

	out := make([]any, 0, len(questions))
	used := make([]bool, len(answers))

	for _, q := range questions {
		matched := false
		for i, a := range answers {
			if !used[i] && a.matches(q) {
				out = append(out, a.Value)
				used[i] = true
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		// First unused answer stands in.
		for i, a := range answers {
			if !used[i] {
				out = append(out, a.Value)
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, nil)
		}
	}

	// Results no question asked for still ship, appended in computed order.
	for i, a := range answers {
		if !used[i] {
			out = append(out, a.Value)
		}
	}
	return out
}
