package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/plotline-org/plotline/chart"
	"github.com/plotline-org/plotline/classify"
	"github.com/plotline-org/plotline/colstore"
	"github.com/plotline-org/plotline/resolve"
	"github.com/plotline-org/plotline/table"
)

// ============================================================================
// COORDINATOR — Classified → Extracted → Resolved → Computed → (Rendered)
//               → Assembled
// ============================================================================
// Drives one task through the full ladder. Each stage that fails swaps in
// its documented sample value and marks itself in Response.Fallbacks; the
// run keeps going. Two exceptions are hard failures: a csv-flavored task
// with no data attached, and an extraction error on the generic-table
// path (where no domain sample exists to stand in).
//
// Everything a run touches is request-scoped — no state crosses requests
// except the columnar-store connection the caller owns.
// ============================================================================

// DefaultTaskTimeout bounds one end-to-end run.
const DefaultTaskTimeout = 180 * time.Second

type renderFunc func(chart.Spec, chart.Kind) string

// Coordinator wires the classifier, fetcher, renderer, and role specs
// into one reusable, concurrency-safe pipeline.
type Coordinator struct {
	classifier  classify.Classifier
	renderer    *chart.Renderer
	fetcher     *Fetcher
	roleSpecs   []resolve.RoleSpec
	pathPattern string
	taskTimeout time.Duration
	maxRows     int
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRenderer replaces the chart renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(c *Coordinator) { c.renderer = r }
}

// WithChartBudget sets the data-URI length budget on the default renderer.
func WithChartBudget(budget int) Option {
	return func(c *Coordinator) { c.renderer.Budget = budget }
}

// WithFetchTimeout sets the page-scrape timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.fetcher = NewFetcher(d) }
}

// WithTaskTimeout bounds the whole run (0 keeps the default).
func WithTaskTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.taskTimeout = d
		}
	}
}

// WithRoleSpecs injects the role→keyword configuration used on the
// wikipedia path.
func WithRoleSpecs(specs []resolve.RoleSpec) Option {
	return func(c *Coordinator) { c.roleSpecs = specs }
}

// WithPathPattern overrides the columnar store's parquet glob.
func WithPathPattern(pattern string) Option {
	return func(c *Coordinator) { c.pathPattern = pattern }
}

// WithMaxRows caps how many delimited data rows a run reads (0 keeps the
// extractor default).
func WithMaxRows(n int) Option {
	return func(c *Coordinator) { c.maxRows = n }
}

// New builds a Coordinator around a classifier.
func New(classifier classify.Classifier, opts ...Option) *Coordinator {
	c := &Coordinator{
		classifier:  classifier,
		renderer:    chart.NewRenderer(),
		fetcher:     NewFetcher(DefaultFetchTimeout),
		roleSpecs:   resolve.FilmRoles(),
		pathPattern: colstore.DefaultPathPattern,
		taskTimeout: DefaultTaskTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives one task through the pipeline and assembles its response.
func (c *Coordinator) Run(ctx context.Context, task string, src Source) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.taskTimeout)
	defer cancel()

	resp := &Response{RunID: uuid.NewString()}

	// ── Classify ──────────────────────────────────────────────────────────
	intent, err := c.classifier.Classify(ctx, task)
	if err != nil || intent == nil {
		// The delegated strategy degrades internally; reaching this branch
		// means a custom classifier failed outright. The keyword strategy
		// still answers.
		logStage("classified", "classifier failed: %v — using keyword strategy", err)
		resp.fellBack(StageClassified)
		intent, _ = classify.Keyword{}.Classify(ctx, task)
	}

	render := func(spec chart.Spec, kind chart.Kind) string {
		return c.renderer.Render(spec, kind)
	}
	wantChart := intent.VisualizationNeeded ||
		intent.AnalysisType == classify.AnalysisVisualization ||
		intent.ExpectedOutputFormat == classify.FormatBase64Image

	// ── Extract / Resolve / Compute per data source ───────────────────────
	var answers []Answer

	switch intent.DataSource {
	case classify.SourceWikipedia:
		records := c.filmRecords(ctx, src, resp)
		answers = analyzeFilms(records, render, resp, wantChart)

	case classify.SourceCourtData:
		answers = analyzeCourt(ctx, src.Runner, c.pathPattern, render, resp, wantChart)

	default: // csv / unknown — the generic-table path
		tab, err := c.genericTable(ctx, src)
		if err != nil {
			return nil, err
		}
		answers = analyzeGeneric(tab, intent, render, resp)
	}

	// ── Assemble ──────────────────────────────────────────────────────────
	assemble(resp, intent, answers)
	return resp, nil
}

// filmRecords extracts and resolves the wikipedia-path records, stepping
// down to the sample table at each failure.
func (c *Coordinator) filmRecords(ctx context.Context, src Source, resp *Response) []resolve.Record {
	tab := c.filmTable(ctx, src, resp)

	res := resolve.Resolve(tab, c.roleSpecs)
	if len(res.Records) == 0 {
		logStage("resolved", "no records survived role resolution — substituting sample table")
		resp.fellBack(StageResolved)
		res = resolve.Resolve(sampleFilmTable(), resolve.FilmRoles())
	}
	return res.Records
}

func (c *Coordinator) filmTable(ctx context.Context, src Source, resp *Response) *table.Table {
	switch src.Kind {
	case SourceHTML:
		body, err := c.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			logStage("extracted", "scrape failed: %v — substituting sample table", err)
			resp.fellBack(StageExtracted)
			return sampleFilmTable()
		}
		tab, err := table.FromHTML(body)
		if err != nil {
			logStage("extracted", "%v — substituting sample table", err)
			resp.fellBack(StageExtracted)
			return sampleFilmTable()
		}
		return tab

	case SourceDelimited:
		tab, err := table.FromDelimitedOpts(src.Bytes, table.DelimitedOptions{MaxRows: c.maxRows})
		if err != nil {
			resp.fellBack(StageExtracted)
			return sampleFilmTable()
		}
		return tab

	default:
		resp.fellBack(StageExtracted)
		return sampleFilmTable()
	}
}

// genericTable extracts the table for the csv/unknown path. Unlike the
// domain paths it has no sample stand-in: extraction errors propagate,
// and an absent source is the pipeline's hard failure.
func (c *Coordinator) genericTable(ctx context.Context, src Source) (*table.Table, error) {
	switch src.Kind {
	case SourceDelimited:
		return table.FromDelimitedOpts(src.Bytes, table.DelimitedOptions{MaxRows: c.maxRows})
	case SourceHTML:
		body, err := c.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		return table.FromHTML(body)
	default:
		return nil, ErrNoDataSource
	}
}
