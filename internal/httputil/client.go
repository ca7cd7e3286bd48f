// Package httputil provides HTTP client utilities for calling upstream APIs.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a JSON REST client that forwards the caller's bearer token on
// every request. The intake service never holds credentials of its own; it
// acts with the identity of the signed-in user.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a client for the given upstream base URL.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

// Do executes an HTTP request against the upstream, attaching the bearer
// token and marshalling body as JSON when present.
func (c *Client) Do(ctx context.Context, token, method, path string, body any) (*http.Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, token, path string) (*http.Response, error) {
	return c.Do(ctx, token, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, token, path string, body any) (*http.Response, error) {
	return c.Do(ctx, token, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, token, path string, body any) (*http.Response, error) {
	return c.Do(ctx, token, http.MethodPut, path, body)
}

// ReadAllWithLimit reads up to limit bytes from r and reports whether the
// body was truncated.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, bool, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(data)) > limit {
		return data[:limit], true, nil
	}
	return data, false, nil
}
