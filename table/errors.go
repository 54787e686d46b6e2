package table

import "fmt"

// ExtractionErrorKind identifies why extraction produced no table.
type ExtractionErrorKind string

const (
	// NoTableFound — the HTML source contains no qualifying data table.
	NoTableFound ExtractionErrorKind = "no_table_found"
	// NoHeader — the source has no header row to name columns from.
	NoHeader ExtractionErrorKind = "no_header"
	// BadInput — the source bytes could not be parsed at all.
	BadInput ExtractionErrorKind = "bad_input"
)

// ExtractionError reports a source that yielded no usable table.
type ExtractionError struct {
	Kind   ExtractionErrorKind
	Source string // "html", "delimited", "query"
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s source, %s): %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s source, %s)", e.Source, e.Kind)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
