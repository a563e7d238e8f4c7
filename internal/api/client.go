// Package api wraps the two portal backends (the general resource API and
// the dedicated auth API) behind typed JSON clients sharing one bearer
// token. Any 401 response force-clears the token and notifies the hosting
// shell through the TokenSource's unauthorized handler; there is no retry
// and no refresh flow.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// Client issues JSON requests against one base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenSource
	logger  Logger
}

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport. Tests use it; the
// default http.Client carries no timeout, matching the contract that
// requests block until the transport itself fails or responds.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a client for the given base URL. All clients sharing a
// TokenSource send the same Authorization header.
func NewClient(baseURL string, tokens *TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Tokens returns the token source shared with this client.
func (c *Client) Tokens() *TokenSource { return c.tokens }

// Get issues a GET and decodes the response into out (when non-nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return NewError(KindUnknown, fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return NewError(KindUnknown, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Current(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("api: %s %s: %v", method, path, err)
		return NewError(KindNetwork, "the server could not be reached")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Printf("api: %s %s: unauthorized", method, path)
		c.tokens.handleUnauthorized()
		return NewError(KindAuth, "your session has expired, please sign in again")
	}
	if resp.StatusCode >= 400 {
		return c.decodeFailure(method, path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Printf("api: %s %s: decode response: %v", method, path, err)
		return NewError(KindUnknown, "the server returned an unreadable response")
	}
	return nil
}

// failureBody is the error envelope both backends use.
type failureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) decodeFailure(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var parsed failureBody
	_ = json.Unmarshal(raw, &parsed)
	message := strings.TrimSpace(parsed.Message)
	if message == "" {
		message = strings.TrimSpace(parsed.Error)
	}

	c.logger.Printf("api: %s %s: status %d: %s", method, path, resp.StatusCode, message)

	if resp.StatusCode >= 500 {
		if message == "" {
			message = fmt.Sprintf("server error (%d)", resp.StatusCode)
		}
		return NewError(KindUnknown, message)
	}
	if message == "" {
		message = fmt.Sprintf("request rejected (%d)", resp.StatusCode)
	}
	return NewError(KindValidation, message)
}
