package colstore

import (
	"strings"
	"testing"
)

func TestDisposalCountsQuery(t *testing.T) {
	q, args := DisposalCountsQuery("/tmp/meta/*.parquet")

	if !strings.Contains(q, "read_parquet('/tmp/meta/*.parquet')") {
		t.Errorf("query missing path pattern:\n%s", q)
	}
	if !strings.Contains(q, "GROUP BY court") {
		t.Errorf("query missing grouping:\n%s", q)
	}
	if got := strings.Count(q, "?"); got != len(args) {
		t.Errorf("placeholders = %d, argNames = %d", got, len(args))
	}
}

func TestDelaysQuery(t *testing.T) {
	q, args := DelaysQuery(DefaultPathPattern)

	for _, col := range []string{"year", "date_of_registration", "decision_date"} {
		if !strings.Contains(q, col) {
			t.Errorf("query missing column %q:\n%s", col, q)
		}
	}
	if got := strings.Count(q, "?"); got != len(args) {
		t.Errorf("placeholders = %d, argNames = %d", got, len(args))
	}
}

func TestStoreOptions(t *testing.T) {
	s := New(WithDSN("/tmp/plotline.db"), WithPathPattern("/data/*.parquet"))
	if s.dsn != "/tmp/plotline.db" {
		t.Errorf("dsn = %q", s.dsn)
	}
	if s.PathPattern() != "/data/*.parquet" {
		t.Errorf("PathPattern = %q", s.PathPattern())
	}
	// Close before any query is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}
