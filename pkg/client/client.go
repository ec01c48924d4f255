// Package client is a Go SDK for the regaudit REST API. Client is a thin
// HTTP wrapper; SyncCache keeps a filtered, reconciled local view on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client calls the regaudit HTTP API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns every regulation merged with its visible audit. A
// non-empty domainName restricts the result to that domain.
func (c *Client) Catalog(ctx context.Context, domainName string) ([]Row, error) {
	q := url.Values{}
	if domainName != "" {
		q.Set("domain", domainName)
	}
	var rows []Row
	if err := c.do(ctx, http.MethodGet, "/regulations", q, nil, &rows); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return rows, nil
}

// Domains returns the distinct catalog domains.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	var domains []string
	if err := c.do(ctx, http.MethodGet, "/regulations/domains", nil, nil, &domains); err != nil {
		return nil, fmt.Errorf("domains: %w", err)
	}
	return domains, nil
}

// Stats returns the dashboard statistics for the caller's scope.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &stats); err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

// SaveAudit creates or replaces the audit for req.RegulationID.
func (c *Client) SaveAudit(ctx context.Context, req SaveRequest) (Audit, error) {
	var resp struct {
		Success bool  `json:"success"`
		Audit   Audit `json:"audit"`
	}
	if err := c.do(ctx, http.MethodPost, "/audit", nil, req, &resp); err != nil {
		return Audit{}, fmt.Errorf("save audit: %w", err)
	}
	return resp.Audit, nil
}

// BulkSave saves every item independently. Item failures are reported in
// the result, not as an error.
func (c *Client) BulkSave(ctx context.Context, items []SaveRequest) (BulkResult, error) {
	body := struct {
		Items []SaveRequest `json:"items"`
	}{Items: items}

	var res BulkResult
	if err := c.do(ctx, http.MethodPost, "/dashboard/bulk-save", nil, body, &res); err != nil {
		return BulkResult{}, fmt.Errorf("bulk save: %w", err)
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error  string       `json:"error"`
		Fields []FieldError `json:"fields"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		payload.Error = strings.TrimSpace(string(raw))
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
	}

	if resp.StatusCode == http.StatusBadRequest && len(payload.Fields) > 0 {
		return &ValidationError{Errors: payload.Fields}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
