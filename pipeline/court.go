package pipeline

import (
	"context"
	"time"

	"github.com/plotline-org/plotline/chart"
	"github.com/plotline-org/plotline/colstore"
	"github.com/plotline-org/plotline/resolve"
	"github.com/plotline-org/plotline/stats"
	"github.com/plotline-org/plotline/table"
)

// ============================================================================
// COURT ANALYSIS — Judgment metadata from the columnar store
// ============================================================================
// Two read shapes: disposal counts per court across a year range, and
// per-case registration→decision dates for the busiest court. The store
// is a collaborator; every query failure substitutes the documented
// sample rows so the response still assembles.
// ============================================================================

// Year range the disposal count covers.
const (
	courtFromYear = 2019
	courtToYear   = 2022
)

// analyzeCourt runs the court answer set against the columnar store.
func analyzeCourt(ctx context.Context, runner colstore.Runner, pathPattern string, render renderFunc, resp *Response, wantChart bool) []Answer {
	counts := fetchDisposalCounts(ctx, runner, pathPattern, resp)

	top, _ := stats.MostCommon(counts)
	topCourt := top.Key

	delays := fetchDelays(ctx, runner, pathPattern, topCourt, resp)

	reg := stats.SlopeByYear(delays)
	yearly := stats.YearlyAverages(delays)
	resp.CleanPoints = len(yearly)

	answers := []Answer{
		{
			Name:  "top_court",
			Value: topCourt,
			match: []string{"which", "most"},
		},
		{
			Name:  "delay_slope",
			Value: reg.Slope,
			match: []string{"slope", "regression"},
		},
	}

	if wantChart {
		answers = append(answers, renderScatter(yearly, chart.Spec{
			Title:  "Average registration→decision delay by year",
			XLabel: "Year",
			YLabel: "Delay (days)",
		}, render, resp))
	}

	return answers
}

// fetchDisposalCounts queries court→count pairs, falling back to the
// sample counts when the store is absent or errors.
func fetchDisposalCounts(ctx context.Context, runner colstore.Runner, pathPattern string, resp *Response) []stats.GroupN {
	if runner == nil {
		resp.fellBack(StageExtracted)
		return sampleDisposalCounts()
	}

	query, _ := colstore.DisposalCountsQuery(pathPattern)
	cols, rows, err := runner.Query(ctx, query, courtFromYear, courtToYear)
	if err != nil {
		logStage("extracted", "disposal count query failed: %v — substituting sample counts", err)
		resp.fellBack(StageExtracted)
		return sampleDisposalCounts()
	}

	tab, err := table.FromRows(cols, rows)
	if err != nil || tab.Len() == 0 {
		resp.fellBack(StageExtracted)
		return sampleDisposalCounts()
	}

	counts := make([]stats.GroupN, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		n, _ := coerce(tab.Cell(i, "n"))
		counts = append(counts, stats.GroupN{Key: tab.Cell(i, "court"), Count: int(n)})
	}
	return counts
}

// fetchDelays queries per-case dates for one court and derives
// YearDelay samples. Any failure yields the sample delays.
func fetchDelays(ctx context.Context, runner colstore.Runner, pathPattern, court string, resp *Response) []stats.YearDelay {
	if runner == nil {
		return sampleDelays()
	}

	query, _ := colstore.DelaysQuery(pathPattern)
	cols, rows, err := runner.Query(ctx, query, court)
	if err != nil {
		logStage("extracted", "delay query failed: %v — substituting sample delays", err)
		resp.fellBack(StageExtracted)
		return sampleDelays()
	}

	tab, err := table.FromRows(cols, rows)
	if err != nil {
		resp.fellBack(StageExtracted)
		return sampleDelays()
	}

	res := resolve.Resolve(tab, resolve.CourtRoles())
	var samples []stats.YearDelay
	for _, rec := range res.Records {
		year, okY := rec.Num("year")
		reg, okR := parseDate(rec.Str("registration_date"))
		dec, okD := parseDate(rec.Str("decision_date"))
		if !okY || !okR || !okD {
			continue
		}
		samples = append(samples, stats.YearDelay{
			Year:  year,
			Delay: dec.Sub(reg).Hours() / 24,
		})
	}

	if len(samples) < 2 {
		logStage("computed", "%v — substituting sample delays", &InsufficientDataError{Needed: 2, Got: len(samples)})
		resp.fellBack(StageComputed)
		return sampleDelays()
	}
	return samples
}

// dateLayouts covers the corpus's mixed conventions: registrations as
// dd-mm-yyyy, decisions as yyyy-mm-dd.
var dateLayouts = []string{"2006-01-02", "02-01-2006", "2006/01/02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
