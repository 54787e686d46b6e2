package pipeline

import (
	"log"

	"github.com/plotline-org/plotline/stats"
	"github.com/plotline-org/plotline/table"
)

// ============================================================================
// SAMPLE FALLBACKS — Documented deterministic stand-ins per stage
// ============================================================================
// When a stage cannot produce real data (page unreachable, store down,
// too few usable rows), the pipeline substitutes these fixed samples and
// records the stage in Response.Fallbacks. The response always assembles;
// only its quality degrades. These values are part of the contract and
// are asserted in tests, so change them deliberately.
// ============================================================================

func logStage(stage, format string, args ...any) {
	log.Printf("pipeline[%s]: "+format, append([]any{stage}, args...)...)
}

// sampleFilmTable mirrors the shape of the live highest-grossing-films
// table with a handful of stable rows.
func sampleFilmTable() *table.Table {
	cols := []string{"Rank", "Peak", "Title", "Worldwide gross", "Year"}
	rows := []map[string]string{
		{"Rank": "1", "Peak": "1", "Title": "Avatar", "Worldwide gross": "$2,923,706,026", "Year": "2009"},
		{"Rank": "2", "Peak": "1", "Title": "Avengers: Endgame", "Worldwide gross": "$2,797,501,328", "Year": "2019"},
		{"Rank": "3", "Peak": "3", "Title": "Avatar: The Way of Water", "Worldwide gross": "$2,320,250,281", "Year": "2022"},
		{"Rank": "4", "Peak": "1", "Title": "Titanic", "Worldwide gross": "$2,257,844,554", "Year": "1997"},
		{"Rank": "5", "Peak": "3", "Title": "Star Wars: The Force Awakens", "Worldwide gross": "$2,068,223,624", "Year": "2015"},
	}
	return table.New(cols, rows)
}

// sampleDisposalCounts stands in for the disposal-count query.
func sampleDisposalCounts() []stats.GroupN {
	return []stats.GroupN{
		{Key: "33_10", Count: 151203},
		{Key: "1_12", Count: 92400},
		{Key: "9_13", Count: 81322},
	}
}

// sampleDelays stands in for the per-case delay query: a gently rising
// yearly average so the regression has a meaningful, stable slope.
func sampleDelays() []stats.YearDelay {
	return []stats.YearDelay{
		{Year: 2019, Delay: 310}, {Year: 2019, Delay: 330},
		{Year: 2020, Delay: 350}, {Year: 2020, Delay: 370},
		{Year: 2021, Delay: 400}, {Year: 2021, Delay: 420},
		{Year: 2022, Delay: 450}, {Year: 2022, Delay: 470},
	}
}
