package table

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// EXTRACTOR TESTS
// ============================================================================

var filmsHTML = []byte(`<html><body>
<table class="infobox"><tr><td>not data</td></tr></table>
<table class="wikitable sortable">
  <tr><th>Rank</th><th>Peak</th><th>Title</th><th>Worldwide gross</th><th>Year</th></tr>
  <tr><td>1</td><td>1</td><td>A [# 1]</td><td>$2,500,000,000[a]</td><td>1995</td></tr>
  <tr><td>2</td><td>3</td><td>B
      Extended</td><td>$1,600,000,000</td><td>2001</td></tr>
  <tr><td>3</td><td>2</td><td>C</td></tr>
</table>
</body></html>`)

func TestFromHTMLPicksFirstDataTable(t *testing.T) {
	tab, err := FromHTML(filmsHTML)
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}

	wantCols := []string{"Rank", "Peak", "Title", "Worldwide gross", "Year"}
	gotCols := tab.Columns()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", gotCols, wantCols)
	}
	for i, c := range wantCols {
		if gotCols[i] != c {
			t.Errorf("column[%d] = %q, want %q", i, gotCols[i], c)
		}
	}

	if tab.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tab.Len())
	}
}

func TestFromHTMLCleansCells(t *testing.T) {
	tab, err := FromHTML(filmsHTML)
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}

	if got := tab.Cell(0, "Title"); got != "A" {
		t.Errorf("footnote marker not stripped: Title = %q, want %q", got, "A")
	}
	if got := tab.Cell(0, "Worldwide gross"); got != "$2,500,000,000" {
		t.Errorf("citation not stripped: gross = %q", got)
	}
	if got := tab.Cell(1, "Title"); got != "B Extended" {
		t.Errorf("whitespace not collapsed: Title = %q, want %q", got, "B Extended")
	}
}

func TestFromHTMLPadsShortRows(t *testing.T) {
	tab, err := FromHTML(filmsHTML)
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}

	// Third row only has 3 cells; it must survive with empty padding.
	if got := tab.Cell(2, "Title"); got != "C" {
		t.Errorf("short row Title = %q, want %q", got, "C")
	}
	if got := tab.Cell(2, "Year"); got != "" {
		t.Errorf("short row Year = %q, want empty", got)
	}
}

func TestFromHTMLNoTableFound(t *testing.T) {
	_, err := FromHTML([]byte(`<html><body><table class="navbox"><tr><td>x</td></tr></table></body></html>`))
	if err == nil {
		t.Fatal("expected error for page without data table")
	}
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error type = %T, want *ExtractionError", err)
	}
	if exErr.Kind != NoTableFound {
		t.Errorf("Kind = %s, want %s", exErr.Kind, NoTableFound)
	}
}

func TestFromDelimited(t *testing.T) {
	csv := []byte("name,score\nalice,10\nbob,20\nshort\n")
	tab, err := FromDelimited(csv)
	if err != nil {
		t.Fatalf("FromDelimited failed: %v", err)
	}
	if tab.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tab.Len())
	}
	if got := tab.Cell(1, "score"); got != "20" {
		t.Errorf("Cell(1, score) = %q, want 20", got)
	}
	if got := tab.Cell(2, "score"); got != "" {
		t.Errorf("short row score = %q, want empty (padded)", got)
	}
}

func TestFromDelimitedRowCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 50; i++ {
		b.WriteString("1\n")
	}
	tab, err := FromDelimitedOpts([]byte(b.String()), DelimitedOptions{MaxRows: 10})
	if err != nil {
		t.Fatalf("FromDelimitedOpts failed: %v", err)
	}
	if tab.Len() != 10 {
		t.Errorf("Len() = %d, want 10 (capped, not errored)", tab.Len())
	}
}

func TestFromRows(t *testing.T) {
	tab, err := FromRows([]string{"court", "n"}, [][]any{
		{"33_10", int64(42)},
		{"1_12", nil},
	})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if got := tab.Cell(0, "n"); got != "42" {
		t.Errorf("Cell(0, n) = %q, want 42", got)
	}
	if got := tab.Cell(1, "n"); got != "" {
		t.Errorf("NULL cell = %q, want empty", got)
	}
}

func TestDedupeColumns(t *testing.T) {
	tab := New([]string{"a", "a", ""}, nil)
	cols := tab.Columns()
	want := []string{"a", "a_2", "column_3"}
	for i, c := range want {
		if cols[i] != c {
			t.Errorf("column[%d] = %q, want %q", i, cols[i], c)
		}
	}
}

func TestRowHasFullColumnSet(t *testing.T) {
	tab := New([]string{"a", "b"}, []map[string]string{{"a": "1"}})
	row := tab.Row(0)
	if _, ok := row["b"]; !ok {
		t.Error("row missing column b — rows must always carry the full column set")
	}
}
