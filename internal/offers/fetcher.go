package offers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/offerwatch/offerwatch/internal/domain"
)

const (
	// DefaultFetchTimeout bounds one catalog request (connect + read).
	DefaultFetchTimeout = 9 * time.Second
	// maxResponseBodyBytes limits the size of fetched catalog responses.
	maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB
	// offerLimitParam asks upstream for the whole catalog in one response.
	offerLimitParam = "89899"
)

// Fetcher retrieves a market's current offer catalog from the upstream API.
// It performs no retries and no persistence; both belong to the callers.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// NewFetcher creates a fetcher against the given offers endpoint.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Fetch requests and parses the catalog for one market. Failures are
// classified: network (transport, timeout, non-2xx) or parse (bad payload).
func (f *Fetcher) Fetch(ctx context.Context, marketID string) (*domain.Catalog, error) {
	requestURL, err := f.buildURL(marketID)
	if err != nil {
		return nil, NewNetworkError(marketID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, NewNetworkError(marketID, fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, doErr := f.client.Do(req)
	if doErr != nil {
		return nil, NewNetworkError(marketID, doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPStatusError(marketID, resp.StatusCode)
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if readErr != nil {
		return nil, NewNetworkError(marketID, fmt.Errorf("read body: %w", readErr))
	}

	return ParseCatalog(marketID, body)
}

// buildURL composes the offers request URL for a market.
func (f *Fetcher) buildURL(marketID string) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("marketId", marketID)
	q.Set("limit", offerLimitParam)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
