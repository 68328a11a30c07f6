package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
)

// DefaultHTTPTimeout bounds a single fetch when no client is supplied.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource fetches a JSON array with a GET request. There is no retry.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

var _ contract.Fetcher = &HTTPSource{} // Compile-time check

// NewHTTPSource creates a source for url; a nil client gets DefaultHTTPTimeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPSource{URL: url, Client: client}
}

// Fetch implements contract.Fetcher.
func (s *HTTPSource) Fetch(ctx context.Context) ([]schema.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetchStatus, s.URL, resp.StatusCode)
	}
	return Decode(resp.Body)
}
