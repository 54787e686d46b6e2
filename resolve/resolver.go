package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/plotline-org/plotline/stats"
	"github.com/plotline-org/plotline/table"
)

// ============================================================================
// RESOLVER — Table rows → role-typed Records
// ============================================================================
// For each role spec, pick the first column whose name contains one of the
// role's hints (case-insensitive). Per row, extract text and — where the
// cell carries one — a numeric value. A record survives only when every
// essential role is non-null; everything else tolerates nulls downstream.
// ============================================================================

// Record is one resolved table row: role → value, with explicit presence.
// A role absent from both maps is null.
type Record struct {
	Text map[string]string
	Nums map[string]float64
}

// Str returns the text value of a role ("" when null).
func (r Record) Str(role string) string { return r.Text[role] }

// Num returns the numeric value of a role and whether it is present.
func (r Record) Num(role string) (float64, bool) {
	v, ok := r.Nums[role]
	return v, ok
}

// Has reports whether a role is non-null in either view.
func (r Record) Has(role string) bool {
	if _, ok := r.Nums[role]; ok {
		return true
	}
	return r.Text[role] != ""
}

// Resolution pairs the emitted records with diagnostics about the mapping.
type Resolution struct {
	Records []Record
	// ColumnFor records which table column served each role ("" = ordinal
	// fallback or unresolved).
	ColumnFor map[string]string
	// Dropped counts rows excluded by the essential-field filter.
	Dropped int
}

// Resolve maps a table's rows onto records using the given role specs.
func Resolve(t *table.Table, specs []RoleSpec) *Resolution {
	cols := t.Columns()
	columnFor := make(map[string]string, len(specs))
	for _, spec := range specs {
		columnFor[spec.Role] = matchColumn(cols, spec.Hints)
	}

	res := &Resolution{ColumnFor: columnFor}

	for i := 0; i < t.Len(); i++ {
		rec := Record{
			Text: make(map[string]string, len(specs)),
			Nums: make(map[string]float64, len(specs)),
		}

		for _, spec := range specs {
			col := columnFor[spec.Role]
			if col == "" {
				if spec.OrdinalFallback {
					rec.Nums[spec.Role] = float64(i + 1)
				}
				continue
			}

			cell := strings.TrimSpace(t.Cell(i, col))
			if cell == "" {
				if spec.OrdinalFallback {
					rec.Nums[spec.Role] = float64(i + 1)
				}
				continue
			}

			if spec.Kind == Text {
				rec.Text[spec.Role] = cell
			}
			if n, ok := CoerceNumber(cell); ok {
				rec.Nums[spec.Role] = n
			} else if spec.Kind == Number && spec.OrdinalFallback {
				rec.Nums[spec.Role] = float64(i + 1)
			}
		}

		if !essentialsPresent(rec, specs) {
			res.Dropped++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res
}

func essentialsPresent(rec Record, specs []RoleSpec) bool {
	for _, spec := range specs {
		if !spec.Essential {
			continue
		}
		switch spec.Kind {
		case Number:
			if _, ok := rec.Nums[spec.Role]; !ok {
				return false
			}
		default:
			if rec.Text[spec.Role] == "" {
				return false
			}
		}
	}
	return true
}

// matchColumn returns the first column whose lower-cased name contains any
// hint, or "" when no column matches.
func matchColumn(columns []string, hints []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, hint := range hints {
			if strings.Contains(lower, hint) {
				return col
			}
		}
	}
	return ""
}

// numberRun matches the first run of digits and thousands separators, with
// an optional decimal part: "$2,500,000,000 (2019)" → "2,500,000,000".
var numberRun = regexp.MustCompile(`[0-9][0-9,]*(\.[0-9]+)?`)

// CoerceNumber extracts a numeric value from a free-text cell. Cells with
// no digit run yield (0, false) — the role stays null.
func CoerceNumber(cell string) (float64, bool) {
	run := numberRun.FindString(cell)
	if run == "" {
		return 0, false
	}
	run = strings.ReplaceAll(run, ",", "")
	v, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CleanPoints builds paired points from two numeric roles. Rows where
// either role fails numeric presence are dropped; the dropped count is
// returned so callers can surface data quality in diagnostics.
func CleanPoints(records []Record, xRole, yRole string) (points []stats.Point, dropped int) {
	for _, rec := range records {
		x, okX := rec.Num(xRole)
		y, okY := rec.Num(yRole)
		if !okX || !okY {
			dropped++
			continue
		}
		points = append(points, stats.Point{X: x, Y: y})
	}
	return points, dropped
}
