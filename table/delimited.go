package table

import (
	"bytes"
	"encoding/csv"
	"io"
)

// ============================================================================
// DELIMITED EXTRACTOR — CSV/TSV bytes → Table
// ============================================================================
// Header row names the columns. A row cap guards against unbounded uploads;
// rows past the cap are truncated silently (performance guard, not a
// correctness guard). Malformed rows are skipped, short rows padded.
// ============================================================================

// DefaultMaxRows caps the number of data rows read from delimited input.
const DefaultMaxRows = 10_000

// DelimitedOptions control delimited parsing.
type DelimitedOptions struct {
	Comma   rune // field delimiter; 0 means ','
	MaxRows int  // row cap; 0 means DefaultMaxRows
}

// FromDelimited parses delimited bytes into a Table using default options.
func FromDelimited(data []byte) (*Table, error) {
	return FromDelimitedOpts(data, DelimitedOptions{})
}

// FromDelimitedOpts parses delimited bytes with explicit options.
func FromDelimitedOpts(data []byte, opts DelimitedOptions) (*Table, error) {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Comma
	reader.FieldsPerRecord = -1 // tolerate ragged rows; we pad below
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, &ExtractionError{Kind: NoHeader, Source: "delimited", Err: err}
	}

	cols := dedupeColumns(headers)

	var rows []map[string]string
	for len(rows) < opts.MaxRows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			if i < len(record) {
				row[c] = CleanCell(record[i])
			} else {
				row[c] = ""
			}
		}
		rows = append(rows, row)
	}

	return New(cols, rows), nil
}
