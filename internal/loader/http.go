package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ForecastPath is the only resource the loader requests.
const ForecastPath = "/get-forecast"

// HTTPFetcher requests the rendered forecast fragment over HTTP.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPFetcher creates a fetcher for baseURL + ForecastPath. An empty
// baseURL requests the path relative to the page origin, which is what the
// browser build uses. The client should carry no timeout.
func NewHTTPFetcher(client *http.Client, baseURL string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns the address the fetcher requests.
func (f *HTTPFetcher) URL() string {
	return f.baseURL + ForecastPath
}

// Fetch issues exactly one GET and never retries.
func (f *HTTPFetcher) Fetch(ctx context.Context) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return Failed(err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return Failed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failed(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(fmt.Errorf("read body: %w", err))
	}

	return Succeeded(body)
}
