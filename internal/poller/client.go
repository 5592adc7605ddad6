package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// the status page is a few hundred KB; anything larger is not the page we expect
const maxResponseBodySize = 5 << 20 // 5MB

const (
	defaultUserAgent       = "sefazwatch"
	defaultIdleConnTimeout = 30 * time.Second
)

// Response holds the result of an HTTP request made by [Client].
//
// Response captures the body (decoded to UTF-8, limited to 5MB), status code,
// latency, and any error that occurred.
type Response struct {
	// Body contains the response body converted to UTF-8.
	Body []byte

	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// ContentType is the Content-Type header as sent by the server.
	ContentType string

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any error that occurred during the request.
	// nil indicates the request completed (though status may indicate an error).
	Error error
}

// OK reports whether the request completed with a 2xx status.
func (r Response) OK() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is an HTTP client wrapper for fetching the status page.
//
// Client uses per-request timeouts via context rather than a global timeout.
// It never retries: a failed fetch is reported and the next scheduled run
// tries again.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new fetch [Client].
//
// An empty userAgent falls back to "sefazwatch".
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				IdleConnTimeout: defaultIdleConnTimeout,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch performs a GET request and returns a structured [Response].
//
// The timeout is applied via context cancellation. Response bodies are
// limited to 5MB and converted to UTF-8 according to the charset declared
// in the Content-Type header (or sniffed from the document when absent).
//
// Fetch always returns a Response; errors are captured in the Error field
// rather than returned separately.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")

	limited := io.LimitReader(resp.Body, maxResponseBodySize)
	decoded, err := charset.NewReader(limited, contentType)
	if err != nil {
		return Response{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Latency:     time.Since(start),
			Error:       fmt.Errorf("failed to decode response charset: %w", err),
		}
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return Response{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Latency:     time.Since(start),
			Error:       fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Latency:     time.Since(start),
		Error:       nil,
	}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil client.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
