package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/justinas/nosurf"
	"github.com/myrjola/mattepaint/internal/errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	client *http.Client
	url    string
	// csrfToken is the latest token handed out by the server in the X-CSRF-Token response header.
	csrfToken string
}

// NewClient creates a cookie-aware HTTP client for the JSON API.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client:    &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine
		url:       url,
		csrfToken: "",
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		resp *http.Response
	)
	for {
		if resp, err = c.Get(ctx, urlPath); err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err error
		req *http.Request
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	return c.do(req)
}

// GetJSON fetches a URL and decodes a successful JSON response into v. The status code is returned as is so that
// tests can assert on error responses.
func (c *Client) GetJSON(ctx context.Context, urlPath string, v any) (int, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return 0, errors.Wrap(err, "client get")
	}
	return resp.StatusCode, decodeJSON(resp, v)
}

// PutJSON sends body as JSON with the CSRF token and decodes a successful JSON response into v.
func (c *Client) PutJSON(ctx context.Context, urlPath string, body any, v any) (int, error) {
	if c.csrfToken == "" {
		// Any response carries a token.
		resp, err := c.Get(ctx, "/api/healthy")
		if err != nil {
			return 0, errors.Wrap(err, "get CSRF token")
		}
		if err = resp.Body.Close(); err != nil {
			return 0, errors.Wrap(err, "close response body")
		}
	}
	return c.PutJSONWithToken(ctx, urlPath, body, v, c.csrfToken)
}

// PutJSONWithToken is PutJSON with an explicit CSRF token, e.g. an empty one to test the CSRF protection.
func (c *Client) PutJSONWithToken(ctx context.Context, urlPath string, body any, v any, csrfToken string) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, errors.Wrap(err, "marshal body")
	}
	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPut, urlPath, bytes.NewReader(payload)); err != nil {
		return 0, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/json")
	if csrfToken != "" {
		req.Header.Set(nosurf.HeaderName, csrfToken)
	}
	var resp *http.Response
	if resp, err = c.do(req); err != nil {
		return 0, errors.Wrap(err, "do request")
	}
	return resp.StatusCode, decodeJSON(resp, v)
}

// DialEvents opens the WebSocket event stream at urlPath.
func (c *Client) DialEvents(ctx context.Context, urlPath string) (*websocket.Conn, error) {
	wsURL := "ws" + strings.TrimPrefix(c.url, "http") + urlPath
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, errors.Wrap(err, "dial websocket", slog.String("url", wsURL))
	}
	return conn, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	if token := resp.Header.Get(nosurf.HeaderName); token != "" {
		c.csrfToken = token
	}
	return resp, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req, nil
}

func decodeJSON(resp *http.Response, v any) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	if v == nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response", slog.Int("status", resp.StatusCode))
	}
	return nil
}
