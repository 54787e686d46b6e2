package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/plotline-org/plotline/stats"
)

// ============================================================================
// CHART RENDERER — Raster charts under a hard output-size budget
// ============================================================================
// Renders scatter/bar/line charts to PNG and encodes them as base64 data
// URIs. The budget bounds the LENGTH OF THE FINAL DATA-URI STRING (prefix
// plus base64 payload) — that is the value callers actually ship, and
// base64 inflates raw bytes by ~33%, so bounding the payload alone would
// undercount. Size control is a fixed three-tier resolution ladder tried
// in order with early exit, never an unbounded retry loop. The last tier's
// output is accepted whatever its size.
//
// Rendering failures never propagate: a chart that cannot be drawn at any
// tier yields an empty string, which callers treat as "no chart
// available".
// ============================================================================

// DefaultBudget is the maximum data-URI length in bytes.
const DefaultBudget = 100_000

const uriPrefix = "data:image/png;base64,"

// Kind selects the chart geometry.
type Kind string

const (
	Scatter Kind = "scatter"
	Bar     Kind = "bar"
	Line    Kind = "line"
)

// Spec is a render-ready chart description. Immutable once constructed.
type Spec struct {
	Points []stats.Point
	// Labels name bar-chart categories; ignored for scatter/line.
	Labels []string

	// Overlay, when non-empty, is drawn as a dashed line over the points
	// (the two-point fitted regression line). OverlaySlope feeds the
	// legend entry.
	Overlay      []stats.Point
	OverlaySlope float64

	Title  string
	XLabel string
	YLabel string
}

// Tier is one fixed resolution configuration in the fallback ladder.
type Tier struct {
	Width  int
	Height int
}

// DefaultTiers is the renderer's resolution ladder, largest first.
var DefaultTiers = []Tier{
	{Width: 800, Height: 600},
	{Width: 600, Height: 400},
	{Width: 400, Height: 300},
}

// RenderError reports that every resolution tier failed to produce an
// image. It never reaches Render's callers; it exists for logging and for
// tests of the internal ladder.
type RenderError struct {
	Tiers int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("chart rendering failed at all %d tiers: %v", e.Tiers, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer renders chart specs within a byte budget.
type Renderer struct {
	Budget int
	Tiers  []Tier
}

// NewRenderer returns a renderer with the default budget and tier ladder.
func NewRenderer() *Renderer {
	return &Renderer{Budget: DefaultBudget, Tiers: DefaultTiers}
}

// Render produces a base64 PNG data URI for the spec, or "" when the
// chart cannot be rendered at any tier. Callers must treat "" as "no
// chart available", not as an error.
func (r *Renderer) Render(spec Spec, kind Kind) string {
	uri, err := r.render(spec, kind)
	if err != nil {
		log.Printf("chart: %v", err)
		return ""
	}
	return uri
}

func (r *Renderer) render(spec Spec, kind Kind) (string, error) {
	tiers := r.Tiers
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	budget := r.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	var lastURI string
	var lastErr error

	for _, tier := range tiers {
		png, err := renderPNG(spec, kind, tier)
		if err != nil {
			lastErr = err
			continue
		}
		uri := uriPrefix + base64.StdEncoding.EncodeToString(png)
		if len(uri) <= budget {
			return uri, nil
		}
		// Over budget — remember it and try the next, smaller tier.
		lastURI = uri
	}

	if lastURI != "" {
		// Every tier rendered but even the smallest is over budget; the
		// ladder is fixed, so accept the final result.
		return lastURI, nil
	}
	return "", &RenderError{Tiers: len(tiers), Err: lastErr}
}

// renderPNG draws one chart at one resolution tier. gonum/plot panics on
// some degenerate inputs; those are converted to errors here so the tier
// ladder can move on.
func renderPNG(spec Spec, kind Kind, tier Tier) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic at %dx%d: %v", tier.Width, tier.Height, r)
		}
	}()

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	switch kind {
	case Bar:
		if err := addBars(p, spec); err != nil {
			return nil, err
		}
	case Line:
		if err := addLine(p, spec); err != nil {
			return nil, err
		}
	default:
		if err := addScatter(p, spec); err != nil {
			return nil, err
		}
	}

	const dpi = 96
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(tier.Width)/dpi*vg.Inch, vg.Length(tier.Height)/dpi*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	pngCanvas := vgimg.PngCanvas{Canvas: canvas}
	if _, err := pngCanvas.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("png encode at %dx%d: %w", tier.Width, tier.Height, err)
	}
	return buf.Bytes(), nil
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func addScatter(p *plot.Plot, spec Spec) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("scatter: no points")
	}

	sc, err := plotter.NewScatter(toXYs(spec.Points))
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)
	p.Legend.Add("data", sc)

	// Regression overlay: dashed so it reads as a fit, not as data.
	if len(spec.Overlay) >= 2 {
		fit, err := plotter.NewLine(toXYs(spec.Overlay))
		if err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		fit.LineStyle.Color = plotutil.Color(1)
		fit.LineStyle.Width = vg.Points(1.5)
		fit.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(fit)
		p.Legend.Add(fmt.Sprintf("slope=%.3f", spec.OverlaySlope), fit)
	}

	p.Legend.Top = true
	return nil
}

func addLine(p *plot.Plot, spec Spec) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("line: no points")
	}
	ln, err := plotter.NewLine(toXYs(spec.Points))
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	ln.LineStyle.Color = plotutil.Color(0)
	ln.LineStyle.Width = vg.Points(1.5)
	p.Add(ln)
	return nil
}

func addBars(p *plot.Plot, spec Spec) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("bar: no points")
	}

	values := make(plotter.Values, len(spec.Points))
	for i, pt := range spec.Points {
		values[i] = pt.Y
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("bar: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)

	if len(spec.Labels) == len(spec.Points) {
		p.NominalX(spec.Labels...)
	}
	return nil
}

func toXYs(points []stats.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}
