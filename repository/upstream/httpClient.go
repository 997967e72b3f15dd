package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client speaks the library backend's response envelope
// {success, data, message}. A failed transport becomes ErrNetwork; an
// envelope with success=false becomes ErrProtocol regardless of HTTP status.
// Every call issues exactly one request; retries are the caller's problem.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func New(baseURL string, hc *http.Client, log *slog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: hc, log: log}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return WrapError(ErrValidation, "cannot encode request body", err)
		}
		rd = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return WrapError(ErrNetwork, "cannot build backend request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("backend request failed", "method", method, "path", path, "err", err)
		return WrapError(ErrNetwork, "cannot reach library service", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Error("backend sent malformed envelope", "method", method, "path", path, "status", resp.StatusCode, "err", err)
		return WrapError(ErrProtocol, "malformed response from library service", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "library service rejected the request"
		}
		code := ErrProtocol
		if resp.StatusCode == http.StatusNotFound {
			code = ErrNotFound
		}
		c.log.Error("backend rejected request", "method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return NewError(code, msg)
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return WrapError(ErrProtocol, "unexpected payload from library service", err)
		}
	}
	return nil
}

// ParseTime reads the backend's timestamp formats leniently; anything
// unreadable becomes the zero time rather than an error.
func ParseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
