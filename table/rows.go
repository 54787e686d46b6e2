package table

import (
	"fmt"
	"strconv"
	"time"
)

// ============================================================================
// QUERY EXTRACTOR — Columnar query results → Table
// ============================================================================
// Rows returned by the columnar-store collaborator pass through unchanged
// into the Table shape. Scalars are stringified; NULLs become empty cells.
// ============================================================================

// FromRows converts query result rows into a Table. The column order of
// the result set is preserved.
func FromRows(columns []string, rows [][]any) (*Table, error) {
	if len(columns) == 0 {
		return nil, &ExtractionError{Kind: NoHeader, Source: "query"}
	}

	cols := dedupeColumns(columns)

	mapped := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			if i < len(r) {
				row[c] = scalarString(r[i])
			} else {
				row[c] = ""
			}
		}
		mapped = append(mapped, row)
	}

	return New(cols, mapped), nil
}

// scalarString renders a query scalar as a cell value.
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", x)
	}
}
