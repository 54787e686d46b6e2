package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/plotline-org/plotline/colstore"
)

// ============================================================================
// SOURCES — Exactly one raw-data source per run
// ============================================================================

// SourceKind tags the variant of a Source.
type SourceKind string

const (
	SourceHTML      SourceKind = "html"
	SourceDelimited SourceKind = "delimited"
	SourceQuery     SourceKind = "query"
	SourceNone      SourceKind = "none"
)

// Source is the single raw input of a pipeline run: a URL to scrape,
// uploaded delimited bytes, or a handle to the columnar store.
type Source struct {
	Kind   SourceKind
	URL    string
	Bytes  []byte
	Runner colstore.Runner
}

// HTMLSource points the run at a page to scrape.
func HTMLSource(url string) Source { return Source{Kind: SourceHTML, URL: url} }

// DelimitedSource feeds the run uploaded delimited bytes.
func DelimitedSource(data []byte) Source { return Source{Kind: SourceDelimited, Bytes: data} }

// QuerySource attaches the columnar-store collaborator.
func QuerySource(r colstore.Runner) Source { return Source{Kind: SourceQuery, Runner: r} }

// NoSource marks a run with no data attached.
func NoSource() Source { return Source{Kind: SourceNone} }

// ============================================================================
// FETCHER — Page scrape with an explicit timeout
// ============================================================================

// DefaultFetchTimeout bounds a single page scrape.
const DefaultFetchTimeout = 30 * time.Second

// maxFetchBytes caps how much of a page we will read.
const maxFetchBytes = 10 << 20

// Fetcher retrieves page bytes for the HTML extractor. Network transport
// lives here, not in the extractor — the extractor is a pure transform.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewFetcher creates a Fetcher with the given per-request timeout
// (0 = DefaultFetchTimeout).
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Fetch GETs a URL and returns its body. The caller's context cancels the
// in-flight request.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("User-Agent", "plotline/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
