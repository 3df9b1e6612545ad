package datapoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/soaring-forecast/internal/forecast"
)

// DefaultBaseURL is the DataPoint site-specific forecast endpoint.
const DefaultBaseURL = "http://datapoint.metoffice.gov.uk/public/data/val/wxfcs/all/json"

var errNoAPIKey = errors.New("datapoint api key is not configured")

// Client fetches 3-hourly site forecasts from Met Office DataPoint.
type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	backoff  BackoffConfig
	circuit  *gobreaker.CircuitBreaker
	dumpPath string
	now      func() time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithBackoff overrides the retry policy.
func WithBackoff(b BackoffConfig) Option {
	return func(c *Client) { c.backoff = b }
}

// WithDebugDump writes every fetched payload, indented, to path.
func WithDebugDump(path string) Option {
	return func(c *Client) { c.dumpPath = path }
}

// NewClient creates a DataPoint client.
func NewClient(httpClient *http.Client, apiKey string, opts ...Option) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "datapoint",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the forecast for locationID.
func (c *Client) Fetch(ctx context.Context, locationID string) (forecast.Snapshot, error) {
	if c.apiKey == "" {
		return forecast.Snapshot{}, errNoAPIKey
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("res", "3hourly")
		values.Set("key", c.apiKey)

		u := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(locationID), values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.client, c.backoff, c.circuit, buildRequest)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("datapoint fetch %s: %w", locationID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("datapoint read %s: %w", locationID, err)
	}

	var report forecast.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return forecast.Snapshot{}, fmt.Errorf("datapoint decode %s: %w", locationID, err)
	}

	if c.dumpPath != "" {
		c.dump(body)
	}

	return forecast.Snapshot{
		LocationID: locationID,
		FetchedAt:  c.now().UTC(),
		Report:     report,
	}, nil
}

func (c *Client) dump(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "    "); err != nil {
		log.Printf("ERROR: datapoint debug dump: %v", err)
		return
	}
	if err := os.WriteFile(c.dumpPath, buf.Bytes(), 0o644); err != nil {
		log.Printf("ERROR: datapoint debug dump: %v", err)
	}
}
