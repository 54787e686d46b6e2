package pipeline

import (
	"errors"
	"fmt"

	"github.com/plotline-org/plotline/classify"
)

// ============================================================================
// RESPONSE — Always structurally valid per the declared output format
// ============================================================================
// Upstream unavailability degrades answer QUALITY, never response SHAPE.
// Every stage that substituted its documented sample value is listed in
// Fallbacks, so degraded answers are distinguishable from computed ones.
// ============================================================================

// Stage names, used as fallback markers.
const (
	StageClassified = "classified"
	StageExtracted  = "extracted"
	StageResolved   = "resolved"
	StageComputed   = "computed"
	StageRendered   = "rendered"
)

// Response is the assembled output of one pipeline run.
type Response struct {
	RunID  string                `json:"runId"`
	Format classify.OutputFormat `json:"format"`

	// Answers is a positional []any (json_array), a map[string]any keyed
	// by question (json_object with several results), or a bare value
	// (exactly one named result).
	Answers any `json:"answers"`

	// Fallbacks lists the stages that substituted sample values.
	Fallbacks []string `json:"fallbacks,omitempty"`

	// CleanPoints is the number of rows that survived numeric coercion
	// for the run's paired statistic, for diagnostics.
	CleanPoints int `json:"cleanPoints,omitempty"`
}

// fellBack marks a stage as degraded, once.
func (r *Response) fellBack(stage string) {
	for _, s := range r.Fallbacks {
		if s == stage {
			return
		}
	}
	r.Fallbacks = append(r.Fallbacks, stage)
}

// ============================================================================
// ERRORS
// ============================================================================

// ErrNoDataSource is the pipeline's one hard failure: a csv-flavored task
// arrived with no data attached, so there is nothing to sample-fallback
// onto.
var ErrNoDataSource = errors.New("no data source provided for a csv task")

// InsufficientDataError reports fewer than 2 usable points for a
// correlation, regression, or plot. Caught at the component boundary and
// replaced with the stage's sample value.
type InsufficientDataError struct {
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d usable points, have %d", e.Needed, e.Got)
}
