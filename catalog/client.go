// Package catalog is a typed client for the remote catalog REST API.
//
// Example usage:
//
//	client := catalog.NewClient("https://api.example.com",
//	    catalog.WithTimeout(10*time.Second),
//	)
//	cat := catalog.New(client)
//
//	brands, err := cat.Brands().List(ctx)
//	page, err := cat.Products().Page(ctx, 15, 0)
//
// Every request declares Accept: application/json, JSON mutations also declare
// Content-Type: application/json, and no credentials are ever attached. There
// is no retry: a failure is returned to the caller as *errs.RequestError.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/errs"
)

// maxErrorBody caps how much of a failed response body is kept on the error.
const maxErrorBody = 4 << 10

// Client communicates with the catalog REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
	logger     zerolog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the default request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithMetrics records every request on m.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger replaces the client's logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new catalog API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.With().Str("component", "catalogClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ---- Internal helpers ----

func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req and decodes a successful JSON response into target. Any
// failure comes back as *errs.RequestError carrying the request path.
func (c *Client) do(req *http.Request, target any) error {
	path := req.URL.Path
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(path, req.Method, 0, time.Since(start))
		c.logger.Debug().Err(err).Str("method", req.Method).Str("path", path).Msg("catalog request failed")
		return errs.NewTransportError(req.Method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.observe(path, req.Method, resp.StatusCode, time.Since(start))
	c.logger.Debug().
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("catalog request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errs.NewStatusError(req.Method, path, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if target == nil {
		return nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewTransportError(req.Method, path, fmt.Errorf("reading response: %w", err))
	}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return errs.NewMalformedResponseError(req.Method, path, resp.StatusCode, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, target any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.buildRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, target)
}

// buildQuery keeps only the non-empty params.
func buildQuery(params map[string]string) url.Values {
	v := url.Values{}
	for key, val := range params {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

func pageQuery(limit, offset int) map[string]string {
	return map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	}
}

func recordPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
