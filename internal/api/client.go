// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the Orion Chat backend.
//
// The backend speaks JSON over HTTP and reports two kinds of failure:
// transport failures (network unreachable, non-JSON body) and application
// failures (a well-formed response with success=false). The client keeps
// the two distinct so the UI can render "Connection failed" for one and the
// backend-provided text for the other, and it maps the backend's
// "Authentication required" signal to ErrAuthRequired so callers can
// surface the login prompt instead of a generic error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the default address of the Orion backend.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout is the default timeout for API requests. Chat
	// completions can take a while on slow models.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// Bounding the body prevents a misbehaving server from exhausting
	// client memory.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Error variables for common backend errors.
var (
	// ErrAuthRequired indicates the backend rejected the call because no
	// user is logged in. Callers surface the login prompt for this one.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnavailable indicates a transport-level failure: the backend
	// could not be reached or returned an unreadable response.
	ErrUnavailable = errors.New("backend unavailable")
)

// BackendError is an application-level failure: the backend answered with a
// well-formed body carrying success=false.
type BackendError struct {
	Message string
	Status  int
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// UserText returns the string shown to the user for err, per the error
// design: transport failures get a generic message, application failures
// surface the backend-provided text when present.
func UserText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrAuthRequired) {
		return "Authentication required"
	}
	var be *BackendError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		return "Server error"
	}
	return "Connection failed"
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the Orion Chat backend.
//
// Authentication is cookie-based: the backend sets a session cookie on
// login and the client's cookie jar carries it on every subsequent call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new backend client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		userAgent: "orion-tui/0.1.0",
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// inject httptest transports; a cookie jar is added if the replacement
// lacks one.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc.Jar == nil {
		hc.Jar, _ = cookiejar.New(nil)
	}
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// logRequest logs an API request without exposing sensitive data. Bodies
// are never logged: they may contain message text or credentials.
func (c *Client) logRequest(method, path string) {
	log.Printf("API request: %s %s", method, path)
}

// logResponse logs an API response with duration. Only status and timing,
// never the body.
func (c *Client) logResponse(path string, status int, duration time.Duration) {
	log.Printf("API response: %s -> %d (%v)", path, status, duration)
}

// do performs a request and returns the raw response body. Transport
// failures are wrapped in ErrUnavailable; HTTP 401 short-circuits to
// ErrAuthRequired regardless of body shape.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logRequest(method, path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.logResponse(path, resp.StatusCode, time.Since(start))

	raw, err := readBody(resp)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return raw, resp.StatusCode, ErrAuthRequired
	}
	return raw, resp.StatusCode, nil
}

// doJSON performs a request and decodes the response into out, translating
// success=false bodies into *BackendError (or ErrAuthRequired).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	raw, status, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	// Every JSON endpoint carries the success/error envelope alongside its
	// payload fields; decode the envelope first to classify failures.
	var envelope struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: invalid response body", ErrUnavailable)
	}

	if envelope.Success != nil && !*envelope.Success {
		if isAuthMessage(envelope.Error) {
			return ErrAuthRequired
		}
		return &BackendError{Message: envelope.Error, Status: status}
	}
	if status >= 400 {
		return &BackendError{Message: envelope.Error, Status: status}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: invalid response body", ErrUnavailable)
		}
	}
	return nil
}

// readBody reads a response body with the size limit applied.
func readBody(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if int64(len(raw)) > MaxResponseSize {
		return nil, fmt.Errorf("%w: response exceeded %d bytes", ErrUnavailable, int64(MaxResponseSize))
	}
	return raw, nil
}

// isAuthMessage reports whether a backend error string is the
// authentication-required signal.
func isAuthMessage(msg string) bool {
	return strings.EqualFold(strings.TrimSpace(msg), "authentication required") ||
		strings.EqualFold(strings.TrimSpace(msg), "not authenticated")
}

// =============================================================================
// TIMESTAMP PARSING
// =============================================================================

// timeLayouts are the formats the backend emits. The backend serializes
// datetimes with isoformat(), which omits the timezone suffix RFC 3339
// requires, so plain time.Time JSON decoding would reject them.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTime parses a backend timestamp, returning the zero time for empty
// or unrecognized input.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
