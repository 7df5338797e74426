// Package ask is the HTTP client for the remote answer service. Lines the
// interpreter does not recognize are posted to it as free-text questions.
package ask

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
)

// DefaultTimeout bounds a single query round trip.
const DefaultTimeout = 30 * time.Second

// QueryPath is appended to the base URL.
const QueryPath = "/api/query"

// Request is the body posted to the answer service.
type Request struct {
	Q string `json:"q"`
}

// Source is a retrieved passage the answer was built from.
type Source struct {
	ID    string         `json:"id"`
	Text  string         `json:"text"`
	Meta  map[string]any `json:"meta,omitempty"`
	Score float64        `json:"score"`
}

// Response is the answer service reply.
type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Error represents a failed query.
type Error struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Client.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client posts questions to <base>/api/query.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, opts *Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{Message: fmt.Sprintf("invalid answer service URL %q", baseURL), Cause: err}
	}
	if opts == nil {
		opts = &Options{}
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint: strings.TrimRight(u.String(), "/") + QueryPath,
		http:     hc,
	}, nil
}

// Endpoint is the full query URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Query posts q and decodes the full response, sources included.
func (c *Client) Query(ctx context.Context, q string) (*Response, error) {
	body, err := json.Marshal(Request{Q: q})
	if err != nil {
		return nil, &Error{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "malformed response", Cause: err}
	}
	return &out, nil
}

// Ask implements the interpreter's Asker.
func (c *Client) Ask(ctx context.Context, q string) (string, error) {
	resp, err := c.Query(ctx, q)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}
