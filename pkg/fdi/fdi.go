// Package fdi is a client for the FDI SMS messaging REST API.
//
// The client authenticates once at construction, keeps the access/refresh
// token pair internally, and exposes the provider operations (send, balance,
// stats, validation) as plain methods. Provider business failures are
// returned as data in the Response envelope; transport and input validation
// failures are returned as Go errors.
package fdi

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Base URLs for the two FDI environments. The environment is selected once
// at construction and fixed for the lifetime of the client.
const (
	SandboxBaseURL    = "https://messaging-sandbox.fdibiz.com"
	ProductionBaseURL = "https://messaging.fdibiz.com"
)

// Doer is the narrow transport contract the client depends on.
// *http.Client satisfies it; tests inject their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config carries the credentials and environment selection for a Client.
type Config struct {
	// APIKey and APISecret are the provider credentials exchanged for a
	// bearer token at construction.
	APIKey    string
	APISecret string

	// Sandbox selects the sandbox environment. Defaults to production.
	Sandbox bool

	// BaseURL overrides the environment selection entirely. Useful for
	// tests and proxies. Optional.
	BaseURL string

	// HTTPClient overrides the default transport. Optional.
	HTTPClient Doer
}

// Client talks to the FDI messaging API. It is safe for concurrent use:
// the token pair is guarded by a mutex and replaced atomically.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	http      Doer

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewClient builds a client for the selected environment and performs the
// initial credential exchange synchronously. It returns an *AuthError if the
// provider rejects the credentials or the response is missing token fields.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		baseURL:   ProductionBaseURL,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		http:      cfg.HTTPClient,
	}
	if cfg.Sandbox {
		c.baseURL = SandboxBaseURL
	}
	if cfg.BaseURL != "" {
		c.baseURL = cfg.BaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}

	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// BaseURL reports the environment base URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}
