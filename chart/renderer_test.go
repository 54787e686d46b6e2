package chart

import (
	"strings"
	"testing"

	"github.com/plotline-org/plotline/stats"
)

// ============================================================================
// RENDERER TESTS
// ============================================================================

func scatterSpec() Spec {
	points := []stats.Point{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 3, Y: 2}, {X: 4, Y: 5}}
	reg := stats.LinearRegression(points)
	line := stats.RegressionLine(points, reg)
	return Spec{
		Points:       points,
		Overlay:      line[:],
		OverlaySlope: reg.Slope,
		Title:        "Rank vs Peak",
		XLabel:       "Rank",
		YLabel:       "Peak",
	}
}

func TestRenderTwoPointsNeverEmpty(t *testing.T) {
	r := NewRenderer()
	uri := r.Render(Spec{Points: []stats.Point{{X: 1, Y: 2}, {X: 2, Y: 4}}, Title: "two points"}, Scatter)
	if uri == "" {
		t.Fatal("two valid points must render to a nonempty data URI")
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("missing data URI prefix: %.40s", uri)
	}
}

func TestRenderWithinBudget(t *testing.T) {
	r := NewRenderer()
	uri := r.Render(scatterSpec(), Scatter)
	if uri == "" {
		t.Fatal("scatter with overlay rendered empty")
	}
	if len(uri) > r.Budget {
		t.Errorf("data URI length %d exceeds budget %d", len(uri), r.Budget)
	}
}

func TestRenderTierFallback(t *testing.T) {
	// A budget only the smallest tier can plausibly satisfy still renders;
	// budget is enforced across the ladder, not per tier.
	r := &Renderer{Budget: 40_000, Tiers: DefaultTiers}
	uri := r.Render(scatterSpec(), Scatter)
	if uri == "" {
		t.Fatal("tiered fallback rendered empty")
	}
	if len(uri) > r.Budget {
		t.Errorf("data URI length %d exceeds tightened budget %d", len(uri), r.Budget)
	}
}

func TestRenderLastTierAcceptedOverBudget(t *testing.T) {
	// An absurd budget no PNG can meet: the ladder stops after the third
	// tier and returns the final render rather than looping or erroring.
	r := &Renderer{Budget: 10, Tiers: DefaultTiers}
	uri := r.Render(scatterSpec(), Scatter)
	if uri == "" {
		t.Fatal("last tier must be accepted even over budget")
	}
	if len(uri) <= 10 {
		t.Errorf("unexpectedly tiny output: %d", len(uri))
	}
}

func TestRenderBarAndLine(t *testing.T) {
	points := []stats.Point{{X: 0, Y: 4}, {X: 1, Y: 7}, {X: 2, Y: 1}}

	r := NewRenderer()
	if uri := r.Render(Spec{Points: points, Labels: []string{"a", "b", "c"}, Title: "counts"}, Bar); uri == "" {
		t.Error("bar chart rendered empty")
	}
	if uri := r.Render(Spec{Points: points, Title: "trend"}, Line); uri == "" {
		t.Error("line chart rendered empty")
	}
}

func TestRenderEmptySpecReturnsEmptyString(t *testing.T) {
	r := NewRenderer()
	if uri := r.Render(Spec{}, Scatter); uri != "" {
		t.Errorf("empty spec should yield empty string, got %d bytes", len(uri))
	}
}
