package colstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" driver
)

// ============================================================================
// COLUMNAR STORE — Remote parquet queries through DuckDB
// ============================================================================
// The court-data corpus lives as partitioned parquet under a fixed path
// pattern (year=*/court=*/bench=*). DuckDB reads it in place; no rows are
// ever persisted locally. The connection is an explicitly owned resource:
// opened once on first query, reused for every subsequent request, and
// released on shutdown via Close — not ambient global state.
// ============================================================================

// DefaultPathPattern addresses the partitioned judgment metadata corpus.
const DefaultPathPattern = "s3://indian-high-court-judgments/metadata/parquet/year=*/court=*/bench=*/metadata.parquet"

// Runner issues parameterized read queries against a columnar store.
// The pipeline depends on this interface so tests can substitute a fake
// without the DuckDB driver.
type Runner interface {
	Query(ctx context.Context, query string, args ...any) (columns []string, rows [][]any, err error)
	Close() error
}

// Store is the DuckDB-backed Runner.
type Store struct {
	dsn         string
	pathPattern string

	once    sync.Once
	db      *sql.DB
	openErr error
}

// Option configures a Store.
type Option func(*Store)

// WithDSN points the store at a persistent DuckDB database file instead
// of the default in-memory instance.
func WithDSN(dsn string) Option {
	return func(s *Store) { s.dsn = dsn }
}

// WithPathPattern overrides the partitioned parquet path pattern.
func WithPathPattern(pattern string) Option {
	return func(s *Store) { s.pathPattern = pattern }
}

// New creates a Store. No connection is opened until the first query.
func New(opts ...Option) *Store {
	s := &Store{pathPattern: DefaultPathPattern}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PathPattern returns the parquet glob this store queries.
func (s *Store) PathPattern() string { return s.pathPattern }

// open establishes the process-lifetime connection exactly once.
func (s *Store) open() error {
	s.once.Do(func() {
		db, err := sql.Open("duckdb", s.dsn)
		if err != nil {
			s.openErr = fmt.Errorf("open duckdb: %w", err)
			return
		}
		// Remote parquet needs the httpfs extension.
		for _, stmt := range []string{"INSTALL httpfs", "LOAD httpfs"} {
			if _, err := db.Exec(stmt); err != nil {
				db.Close()
				s.openErr = fmt.Errorf("%s: %w", stmt, err)
				return
			}
		}
		s.db = db
	})
	return s.openErr
}

// Query runs a parameterized read query and returns generic columns/rows
// in result-set order.
func (s *Store) Query(ctx context.Context, query string, args ...any) ([]string, [][]any, error) {
	if err := s.open(); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("columnar query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columnar query columns: %w", err)
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("columnar query scan: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("columnar query rows: %w", err)
	}

	return columns, out, nil
}

// Close releases the connection if one was ever opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
