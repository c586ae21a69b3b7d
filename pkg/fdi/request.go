package fdi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// requestTimeout bounds a single provider call when the caller's context
// carries no deadline of its own.
const requestTimeout = 5 * time.Second

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// get performs a GET against path. When authed is true the current bearer
// token is attached. A non-200 answer whose body lacks a "success" field is
// converted into a synthesized failure envelope so callers always see the
// same shape.
func (c *Client) get(ctx context.Context, path string, authed bool) (*Response, error) {
	ctx, cancel := withTimeout(ctx, requestTimeout)
	defer cancel()

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: url, Err: err}
	}
	c.setHeaders(req, authed)

	status, raw, err := c.do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: url, Err: err}
	}

	resp := decodeEnvelope(status, raw)
	if status != http.StatusOK {
		if _, ok := resp.Body["success"]; !ok {
			resp.Success = false
			resp.Body = map[string]any{
				"success": false,
				"status":  status,
				"message": raw,
			}
		}
	}
	return resp, nil
}

// post performs a POST with a JSON body against path. The provider's answer
// is decoded and passed through as-is, whatever the status code.
func (c *Client) post(ctx context.Context, path string, body map[string]any, authed bool) (*Response, error) {
	ctx, cancel := withTimeout(ctx, requestTimeout)
	defer cancel()

	url := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Op: "POST", URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Op: "POST", URL: url, Err: err}
	}
	c.setHeaders(req, authed)

	status, raw, err := c.do(req)
	if err != nil {
		return nil, &TransportError{Op: "POST", URL: url, Err: err}
	}

	return decodeEnvelope(status, raw), nil
}

// do executes the request and drains the body.
func (c *Client) do(req *http.Request) (int, string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode, string(raw), nil
}

// setHeaders attaches Content-Type and, when requested, the bearer token.
func (c *Client) setHeaders(req *http.Request, authed bool) {
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", c.bearer())
	}
}

// decodeEnvelope parses the raw body into a Response. Bodies that are not
// valid JSON objects yield an empty-body failure envelope with the raw text
// preserved for the caller.
func decodeEnvelope(status int, raw string) *Response {
	resp := &Response{StatusCode: status, Raw: raw}

	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil || body == nil {
		return resp
	}

	resp.Body = body
	resp.Success, _ = body["success"].(bool)
	return resp
}
