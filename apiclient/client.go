// Package apiclient is a typed HTTP client for the Lecture Reminder System
// API. Every call takes a context and, for protected endpoints, the bearer
// credential of the acting user. The client never inspects or validates the
// credential; it only forwards it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultTimeout bounds a single API round trip when the caller does not
// provide its own http.Client.
const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the LRS API. Message carries the
// server's `{message}` payload when one was present.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lrs api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("lrs api: status %d", e.Status)
}

// Category maps the response status onto the error taxonomy used across the
// application, so controllers can branch without poking at status codes.
func (e *APIError) Category() goerrors.Category {
	switch {
	case e.Status == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case e.Status == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case e.Status == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case e.Status == http.StatusConflict:
		return goerrors.CategoryConflict
	case e.Status >= 400 && e.Status < 500:
		return goerrors.CategoryBadInput
	default:
		return goerrors.CategoryInternal
	}
}

// IsAPIError unwraps err looking for an *APIError.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if goerrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client talks to the LRS API at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client, e.g. for tests or custom
// transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the API rooted at baseURL ("http://host:port",
// no trailing slash required).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: trimTrailingSlash(baseURL),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one JSON round trip. body is marshaled when non-nil; out is
// decoded into when non-nil and the response succeeded. credential, when
// non-empty, is sent as a bearer token.
func (c *Client) do(ctx context.Context, method, path, credential string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body").
				WithMetadata(map[string]any{"method": method, "path": path})
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create request").
			WithMetadata(map[string]any{"method": method, "path": path})
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "lrs api unreachable").
			WithTextCode("API_UNREACHABLE").
			WithMetadata(map[string]any{"method": method, "path": path, "base_url": c.baseURL})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "invalid response from lrs api").
			WithMetadata(map[string]any{"method": method, "path": path, "status": resp.StatusCode})
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	// Error payloads are `{message}`; anything else leaves Message empty.
	_ = json.NewDecoder(resp.Body).Decode(apiErr)
	return apiErr
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
