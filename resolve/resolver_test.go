package resolve

import (
	"testing"

	"github.com/plotline-org/plotline/table"
)

// ============================================================================
// RESOLVER TESTS
// ============================================================================

func filmTable(t *testing.T) *table.Table {
	t.Helper()
	return table.New(
		[]string{"Rank", "Peak", "Title", "Worldwide gross", "Year"},
		[]map[string]string{
			{"Rank": "1", "Peak": "1", "Title": "A", "Worldwide gross": "$2,500,000,000", "Year": "1995"},
			{"Rank": "2", "Peak": "3", "Title": "B", "Worldwide gross": "$1,600,000,000", "Year": "2001"},
			{"Rank": "3", "Peak": "2", "Title": "", "Worldwide gross": "$1,000,000,000", "Year": "1999"},
			{"Rank": "4", "Peak": "4", "Title": "D", "Worldwide gross": "TBD", "Year": "2030"},
		},
	)
}

func TestResolveFilmRoles(t *testing.T) {
	res := Resolve(filmTable(t), FilmRoles())

	// Rows 3 and 4 fail the essential filter (empty title, no digits in
	// revenue) and are silently excluded.
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", res.Dropped)
	}

	rec := res.Records[0]
	if rec.Str("title") != "A" {
		t.Errorf("title = %q, want A", rec.Str("title"))
	}
	if rev, ok := rec.Num("revenue"); !ok || rev != 2_500_000_000 {
		t.Errorf("revenue = %v (%v), want 2500000000", rev, ok)
	}
	if year, ok := rec.Num("year"); !ok || year != 1995 {
		t.Errorf("year = %v (%v), want 1995", year, ok)
	}
}

func TestResolveHintMatchingIsCaseInsensitive(t *testing.T) {
	tab := table.New(
		[]string{"FILM TITLE", "GROSS"},
		[]map[string]string{{"FILM TITLE": "X", "GROSS": "$900"}},
	)
	res := Resolve(tab, FilmRoles())
	if got := res.ColumnFor["title"]; got != "FILM TITLE" {
		t.Errorf("title column = %q, want FILM TITLE", got)
	}
	if got := res.ColumnFor["revenue"]; got != "GROSS" {
		t.Errorf("revenue column = %q, want GROSS", got)
	}
}

func TestResolveOrdinalFallback(t *testing.T) {
	// No rank/peak column anywhere — both roles fall back to 1-based
	// insertion order.
	tab := table.New(
		[]string{"Title", "Worldwide gross"},
		[]map[string]string{
			{"Title": "A", "Worldwide gross": "$300"},
			{"Title": "B", "Worldwide gross": "$200"},
			{"Title": "C", "Worldwide gross": "$100"},
		},
	)
	res := Resolve(tab, FilmRoles())
	if len(res.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(res.Records))
	}
	for i, rec := range res.Records {
		want := float64(i + 1)
		if rank, _ := rec.Num("rank"); rank != want {
			t.Errorf("record %d rank = %v, want %v", i, rank, want)
		}
		if peak, _ := rec.Num("peak"); peak != want {
			t.Errorf("record %d peak = %v, want %v", i, peak, want)
		}
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"$2,500,000,000", 2_500_000_000, true},
		{"1995", 1995, true},
		{"T2,257,844,554", 2_257_844_554, true},
		{"12.5 weeks", 12.5, true},
		{"TBD", 0, false},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := CoerceNumber(tt.cell)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CoerceNumber(%q) = %v, %v; want %v, %v", tt.cell, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCleanPointsDropsNonNumericPairs(t *testing.T) {
	res := Resolve(filmTable(t), FilmRoles())
	points, dropped := CleanPoints(res.Records, "rank", "peak")
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}

	// Null out one axis and confirm the pair is dropped and counted.
	recs := res.Records
	delete(recs[1].Nums, "peak")
	points, dropped = CleanPoints(recs, "rank", "peak")
	if len(points) != 1 || dropped != 1 {
		t.Errorf("after nulling: points = %d, dropped = %d; want 1, 1", len(points), dropped)
	}
}
