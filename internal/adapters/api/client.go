// Package api is the gateway to the academy's remote REST backend. It owns
// bearer-token attachment, the response envelope, and the normalization of
// HTTP failures into the console's error taxonomy. Entity-specific calls
// live in the sub-packages (people, classes, attendance, ...).
package api

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

// contextKey is an unexported type for context keys in this package.
type contextKey string

const tokenContextKey contextKey = "bearer"

// WithToken returns a context carrying the bearer token to attach to
// outgoing backend calls. Handlers set it from the current session.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext extracts the bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    json.RawMessage `json:"errors"`
	Timestamp string          `json:"timestamp"`
}

// Client issues authenticated JSON calls against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client for the given base URL
// (e.g. "http://localhost:5225/api").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTP creates a gateway client with a caller-supplied
// http.Client. Intended for tests.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// Get issues a GET and decodes the envelope's data into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one backend round-trip.
// PRE: path starts with "/"
// POST: out is populated from the envelope's data field on success
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if len(raw) > 0 {
		// Non-JSON bodies are tolerated; the status code still decides.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, env)
	}

	if out == nil {
		return nil
	}
	data := env.Data
	if len(data) == 0 {
		// A few endpoints (notably /Auth/login) respond without the
		// envelope; fall back to the whole body.
		data = raw
	}
	if len(data) == 0 {
		return nil
	}
	if err := decodeNormalized(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Download streams a binary endpoint (report blobs). The caller owns the
// returned body and must close it.
// POST: Returns the response body and content type on success
func (c *Client) Download(ctx context.Context, path string, query url.Values) (io.ReadCloser, string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("backend unreachable: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, "", newError(resp.StatusCode, env)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// Params builds query values from the given map, skipping empty strings,
// zero ints and nil pointers so optional filters stay off the wire.
func Params(pairs map[string]any) url.Values {
	q := url.Values{}
	for key, value := range pairs {
		switch v := value.(type) {
		case string:
			if v != "" {
				q.Set(key, v)
			}
		case int:
			if v != 0 {
				q.Set(key, fmt.Sprintf("%d", v))
			}
		case bool:
			q.Set(key, fmt.Sprintf("%t", v))
		case *bool:
			if v != nil {
				q.Set(key, fmt.Sprintf("%t", *v))
			}
		case fmt.Stringer:
			if s := v.String(); s != "" {
				q.Set(key, s)
			}
		}
	}
	return q
}
