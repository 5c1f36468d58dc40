// Package httpclient sends JSON requests to a running core server the way
// integration tests need to: short timeouts, CDI version and recipe headers,
// and non-2xx responses surfaced as errors carrying the body.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vanshika-srivastava/coretest/internal/logging"
)

// CDI versions the server under test understands
const (
	CDIVersion2_7  = "2.7"
	CDIVersion2_8  = "2.8"
	CDIVersion2_9  = "2.9"
	CDIVersion2_10 = "2.10"
	CDIVersion2_11 = "2.11"
	CDIVersion2_12 = "2.12"
)

// Defaults matching the server's test configuration
const (
	DefaultBaseURL        = "http://localhost:3567"
	DefaultConnectTimeout = 1000 * time.Millisecond
	DefaultReadTimeout    = 1000 * time.Millisecond
)

// ResponseError is returned for any non-2xx response
type ResponseError struct {
	Body       string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("Http error. Status Code: %d. Message: %s", e.StatusCode, e.Body)
}

// Request describes one call. Only CDIVersion is required.
type Request struct {
	APIKey     string
	CDIVersion string
	Path       string
	RID        string
}

// Client talks to one server
type Client struct {
	baseURL        string
	connectTimeout time.Duration
	httpClient     *http.Client
	readTimeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithTimeouts sets the connect and read timeouts
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = connect
		c.readTimeout = read
		c.httpClient.Transport = newTransport(connect, read)
	}
}

// WithHTTPClient replaces the underlying client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for baseURL; an empty baseURL means DefaultBaseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		connectTimeout: DefaultConnectTimeout,
		httpClient: &http.Client{
			Transport: newTransport(DefaultConnectTimeout, DefaultReadTimeout),
		},
		readTimeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newTransport(connect, read time.Duration) *http.Transport {
	return &http.Transport{
		DialContext:           (&net.Dialer{Timeout: connect}).DialContext,
		DisableKeepAlives:     true,
		ResponseHeaderTimeout: read,
	}
}

// PostJSON sends body as JSON and decodes the JSON object in the response
func (c *Client) PostJSON(ctx context.Context, req Request, body any) (map[string]any, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, req, nil, bytes.NewReader(data))
}

// GetJSON sends a GET with params as the query string and decodes the JSON
// object in the response
func (c *Client) GetJSON(ctx context.Context, req Request, params map[string]string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, req, params, nil)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	req Request,
	params map[string]string,
	body io.Reader,
) (map[string]any, error) {
	if req.CDIVersion == "" {
		return nil, fmt.Errorf("cdi version is required")
	}

	// Without a caller deadline a server that stalls mid-body would block
	// the read forever
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.connectTimeout+c.readTimeout)
		defer cancel()
	}

	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	httpReq.Header.Set("cdi-version", req.CDIVersion)
	if req.APIKey != "" {
		httpReq.Header.Set("api-key", req.APIKey)
	}
	if req.RID != "" {
		httpReq.Header.Set("rid", req.RID)
	}

	logging.Logger.Debug("Sending request", "method", method, "url", u, "rid", req.RID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Logger.Debug("Request failed", "url", u, "status", resp.StatusCode)
		return nil, &ResponseError{Body: string(respBody), StatusCode: resp.StatusCode}
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}
