package table

import (
	"fmt"
	"strings"
)

// ============================================================================
// TABLE — Uniform header+rows model for every raw source
// ============================================================================
// Every extractor variant (HTML, delimited, columnar query) produces this
// one shape. Rows always carry the full column set — a missing value is an
// empty string, never an absent key. Tables are built once per pipeline run
// and never mutated afterward.
// ============================================================================

// Table is an ordered set of named columns plus ordered rows.
type Table struct {
	columns []string
	rows    []map[string]string
}

// New builds a Table from columns and rows, normalizing every row to the
// full column set. Duplicate column names get a numeric suffix so the
// uniqueness invariant holds regardless of the source.
func New(columns []string, rows []map[string]string) *Table {
	cols := dedupeColumns(columns)

	normalized := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		full := make(map[string]string, len(cols))
		for _, c := range cols {
			full[c] = row[c]
		}
		normalized = append(normalized, full)
	}

	return &Table{columns: cols, rows: normalized}
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the value at row i, column name. Out-of-range access and
// unknown columns read as empty.
func (t *Table) Cell(i int, column string) string {
	if i < 0 || i >= len(t.rows) {
		return ""
	}
	return t.rows[i][column]
}

// Column returns all values of one column in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.rows[i][name]
	}
	return out
}

// Row returns a copy of row i keyed by column name.
func (t *Table) Row(i int) map[string]string {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	out := make(map[string]string, len(t.columns))
	for _, c := range t.columns {
		out[c] = t.rows[i][c]
	}
	return out
}

func dedupeColumns(columns []string) []string {
	seen := make(map[string]int, len(columns))
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			name = fmt.Sprintf("column_%d", len(cols)+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = seen[name] + 1
		cols = append(cols, name)
	}
	return cols
}

// NormalizeKey converts "Worldwide gross" → "worldwide_gross".
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
