package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fivetwenty-io/dsp-client/internal/auth"
	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client issues authenticated JSON requests against one base URL.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       Logger
	debug        bool
	iriAsIs      bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug and retry output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its transport is used
// as is, without tracing instrumentation.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// WithIncomingIRIAsIs sends absolute http(s) paths unchanged. The endpoint
// clients always pass base-relative paths, so it only affects callers that
// hand an absolute URL to Do or one of the verb helpers.
func WithIncomingIRIAsIs(enabled bool) Option {
	return func(c *Client) {
		c.iriAsIs = enabled
	}
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is sent as JSON. []byte and json.RawMessage are sent verbatim.
	Body interface{}
}

// Response is a 2xx response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	Method     string
	URL        string
}

// NewClient creates a client. tokenManager may be nil for unauthenticated use.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient = &http.Client{
		Timeout:   constants.DefaultHTTPTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && retryClient.RetryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// ResolveURL returns the absolute URL for path and query.
func (c *Client) ResolveURL(path string, query url.Values) string {
	target := c.baseURL + path
	if c.iriAsIs && (strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")) {
		target = path
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}

		target += sep + query.Encode()
	}

	return target
}

// Do issues the request. Non-2xx responses return both the response and a
// *dsp.ResponseError; network failures return a nil response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target := c.ResolveURL(req.Path, req.Query)

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, &dsp.ResponseError{Status: dsp.StatusNetworkFailure, Method: req.Method, URL: target, Err: err}
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logRequest(req.Method, target, body)

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &dsp.ResponseError{Status: dsp.StatusNetworkFailure, Method: req.Method, URL: target, Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &dsp.ResponseError{Status: httpResp.StatusCode, Method: req.Method, URL: target, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logResponse(req.Method, target, httpResp.StatusCode, time.Since(start), respBody)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
		Method:     req.Method,
		URL:        target,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return resp, &dsp.ResponseError{
			Status: httpResp.StatusCode,
			Method: req.Method,
			URL:    target,
			Body:   respBody,
			Err:    fmt.Errorf("%w: %d", dsp.ErrHTTPStatus, httpResp.StatusCode),
		}
	}

	return resp, nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(b)
	}
}

func (c *Client) logRequest(method, target string, body []byte) {
	if !c.debug || c.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"method": method,
		"url":    target,
	}

	if len(body) > 0 {
		fields["body"] = truncate(string(body))
	}

	c.logger.Debug("HTTP Request", fields)
}

func (c *Client) logResponse(method, target string, status int, elapsed time.Duration, body []byte) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method":   method,
		"url":      target,
		"status":   status,
		"duration": elapsed.String(),
		"body":     truncate(string(body)),
	})
}

const maxLoggedBody = 2048

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}

	return s[:maxLoggedBody] + "..."
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromPairs(keysAndValues))
}

func fieldsFromPairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
