package colstore

import "fmt"

// ============================================================================
// QUERY BUILDERS — The two read shapes the pipeline issues
// ============================================================================
// Values interpolate as ? parameters; only the parquet glob (operator
// configuration, never user input) lands in the SQL text itself.
// ============================================================================

// DisposalCountsQuery counts decided cases per court across a year range.
// Result columns: court, n.
func DisposalCountsQuery(pathPattern string) (query string, argNames []string) {
	q := fmt.Sprintf(`SELECT court, COUNT(*) AS n
FROM read_parquet('%s')
WHERE year BETWEEN ? AND ?
GROUP BY court
ORDER BY n DESC`, pathPattern)
	return q, []string{"fromYear", "toYear"}
}

// DelaysQuery fetches per-case year and registration→decision dates for
// one court. Result columns: year, date_of_registration, decision_date.
func DelaysQuery(pathPattern string) (query string, argNames []string) {
	q := fmt.Sprintf(`SELECT year, date_of_registration, decision_date
FROM read_parquet('%s')
WHERE court = ?
  AND decision_date IS NOT NULL
  AND date_of_registration IS NOT NULL`, pathPattern)
	return q, []string{"court"}
}
