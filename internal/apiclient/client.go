// Package apiclient talks to the backend REST API. The frontend owns no
// business logic or persistence: everything here is a thin, typed wrapper
// over the backend's endpoints.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for authenticated calls. It is
// consulted on every single request and never cached, so clearing the
// underlying store invalidates all call sites immediately.
type TokenSource interface {
	Token() (string, bool)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() (string, bool)

func (f TokenSourceFunc) Token() (string, bool) { return f() }

// Client is an HTTP client for the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client for the given base URL, e.g.
// "https://api.example.com". Requests are bounded by a 30 second timeout;
// there is no retry and no idempotency key, every call is at-most-once.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// apiMessage is the backend's error envelope.
type apiMessage struct {
	Message string `json:"message"`
}

// doJSON performs one round trip. ts may be nil for public endpoints; when
// set, the bearer token is read from it at call time. A 401 or 403 maps to
// AuthenticationError, other non-2xx statuses to a plain error carrying the
// backend message, and a non-JSON response of any status to ProtocolError.
func (c *Client) doJSON(ctx context.Context, method, path string, ts TokenSource, body, out any) error {
	resp, err := c.send(ctx, method, path, ts, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isJSON(resp.Header.Get("Content-Type")) {
		return &ProtocolError{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var msg apiMessage
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return &AuthenticationError{Status: resp.StatusCode, Message: orDefault(msg.Message, "not authorized")}
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, orDefault(msg.Message, http.StatusText(resp.StatusCode)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProtocolError{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, ts TokenSource, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts != nil {
		token, ok := ts.Token()
		if !ok {
			return nil, ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
