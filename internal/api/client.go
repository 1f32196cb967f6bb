package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// searchCacheTTL bounds how long an autocomplete response may be reused.
// Long enough to absorb backspace-and-retype, short enough that directory
// changes show up promptly.
const searchCacheTTL = 30 * time.Second

// Client talks to the remote HR API. All responses arrive in the same
// envelope: {"code": int, "message": string, "data": ...}.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string

	// Cache for GET lookups behind autocomplete fields, keyed by the full
	// request URL. CRUD calls never go through it.
	searchCache *expirable.LRU[string, json.RawMessage]
}

// Option customizes the client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests use this)
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithSearchCache sets the size of the autocomplete response cache;
// size <= 0 disables it.
func WithSearchCache(size int) Option {
	return func(c *Client) {
		if size <= 0 {
			c.searchCache = nil
			return
		}
		c.searchCache = expirable.NewLRU[string, json.RawMessage](size, nil, searchCacheTTL)
	}
}

// NewClient creates a client for the given base URL
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpc:       &http.Client{Timeout: timeout},
		searchCache: expirable.NewLRU[string, json.RawMessage](128, nil, searchCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token used for all subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken drops the bearer token and any cached lookups (logout)
func (c *Client) ClearToken() {
	c.token = ""
	if c.searchCache != nil {
		c.searchCache.Purge()
	}
}

// get performs a GET and decodes the envelope's data field into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// getPaged is get plus the envelope's pagination block, for list endpoints
func (c *Client) getPaged(ctx context.Context, path string, query url.Values, out any) (*PageInfo, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.doPaged(req, out)
}

// getCached is get with the autocomplete response cache in front
func (c *Client) getCached(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	if c.searchCache != nil {
		if raw, ok := c.searchCache.Get(u); ok {
			return json.Unmarshal(raw, out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	var raw json.RawMessage
	if err := c.do(req, &raw); err != nil {
		return err
	}
	if c.searchCache != nil {
		c.searchCache.Add(u, raw)
	}
	return json.Unmarshal(raw, out)
}

// post performs a POST with a JSON body and decodes data into out
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

// patch performs a PATCH with a JSON body and decodes data into out
func (c *Client) patch(ctx context.Context, path string, body any, out any) error {
	return c.send(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes a request and unwraps the response envelope
func (c *Client) do(req *http.Request, out any) error {
	_, err := c.doPaged(req, out)
	return err
}

// doPaged is do plus the envelope's meta block, nil when the server omits it
func (c *Client) doPaged(req *http.Request, out any) (*PageInfo, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Not even an envelope: degrade to a status-only error
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to parse response envelope: %w", err)
	}

	if resp.StatusCode >= 400 || (env.Code != 0 && env.Code >= 400) {
		apiErr := &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
		if env.Error != nil && env.Error.Details != "" {
			apiErr.Details = env.Error.Details
		}
		log.Printf("API error %s %s: %s", req.Method, req.URL.Path, apiErr)
		return nil, apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return env.Meta, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}
	return env.Meta, nil
}
