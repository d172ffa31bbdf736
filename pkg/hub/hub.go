package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request is a single call against the hub's REST API. A nil Body sends no
// request body.
type Request struct {
	Method string
	Path   string
	Body   any
}

// Doer executes hub requests. *Client implements it.
type Doer interface {
	Do(ctx context.Context, r Request) (json.RawMessage, error)
}

// Client calls the hub's REST API with a bearer token.
type Client struct {
	BaseURL    string       // Hub base URL (no trailing slash).
	Token      string       // Long-lived access token.
	HTTPClient *http.Client // HTTP client; falls back to http.DefaultClient.
}

// New creates a Client for the hub at baseURL. A zero timeout means requests
// are bounded only by their context.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	return http.DefaultClient
}

// NewRequest builds an *http.Request for path with the base URL and auth
// already applied.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Do sends r to the hub and returns the compacted JSON response body. A
// non-2xx response is returned as a *StatusError; a 2xx response whose body is
// not valid JSON is an error.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("hub: marshal body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.NewRequest(ctx, r.Method, r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("hub: build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config.
	if err != nil {
		return nil, fmt.Errorf("hub: %s %s: %w", r.Method, r.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hub: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp, respBody)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, respBody); err != nil {
		return nil, fmt.Errorf("hub: decode response: %w", err)
	}

	return json.RawMessage(compact.Bytes()), nil
}
