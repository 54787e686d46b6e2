package resolve

// ============================================================================
// ROLE SPECS — Ordered (role → keyword hints) configuration
// ============================================================================
// Column matching is an explicit, injectable list of role specs evaluated
// in order — not ad hoc string scanning at call sites. Each role names the
// header keywords that identify its column, whether the role is essential
// (records missing it are filtered out), and whether it may fall back to
// the record's 1-based insertion order when no column matches.
// ============================================================================

// Kind says how a role's cell values are interpreted.
type Kind string

const (
	Text   Kind = "text"
	Number Kind = "number"
)

// RoleSpec maps one semantic role onto a table column via keyword hints.
type RoleSpec struct {
	Role string
	Kind Kind

	// Hints are matched case-insensitively as substrings of column names,
	// in order; the first column containing any hint wins.
	Hints []string

	// Essential roles must resolve to a non-null value or the record is
	// dropped (a quality filter, not a validation failure).
	Essential bool

	// OrdinalFallback assigns the 1-based row order when no column
	// matches any hint. Used for rank-like roles.
	OrdinalFallback bool
}

// FilmRoles is the role set for highest-grossing-film tables.
func FilmRoles() []RoleSpec {
	return []RoleSpec{
		{Role: "title", Kind: Text, Hints: []string{"title", "film", "movie"}, Essential: true},
		{Role: "revenue", Kind: Number, Hints: []string{"worldwide", "gross", "box office", "revenue"}, Essential: true},
		{Role: "year", Kind: Number, Hints: []string{"year", "released"}},
		{Role: "rank", Kind: Number, Hints: []string{"rank"}, OrdinalFallback: true},
		{Role: "peak", Kind: Number, Hints: []string{"peak"}, OrdinalFallback: true},
	}
}

// CourtRoles is the role set for per-case judgment delay rows.
func CourtRoles() []RoleSpec {
	return []RoleSpec{
		{Role: "year", Kind: Number, Hints: []string{"year"}, Essential: true},
		{Role: "registration_date", Kind: Text, Hints: []string{"date_of_registration", "registration"}, Essential: true},
		{Role: "decision_date", Kind: Text, Hints: []string{"decision_date", "date_of_decision", "decision"}, Essential: true},
	}
}
