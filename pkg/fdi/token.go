package fdi

import (
	"context"
	"fmt"
)

// authenticate exchanges the API key/secret for a token pair. It is called
// once from NewClient, without an authorization header.
func (c *Client) authenticate(ctx context.Context) error {
	resp, err := c.post(ctx, "/api/v1/auth/", map[string]any{
		"api_username": c.apiKey,
		"api_password": c.apiSecret,
	}, false)
	if err != nil {
		return err
	}

	if !resp.Success {
		msg := resp.String("message")
		if msg == "" {
			msg = fmt.Sprintf("provider returned status %d", resp.StatusCode)
		}
		return &AuthError{Message: msg, Response: resp}
	}

	access := resp.String("access_token")
	refresh := resp.String("refresh_token")
	if access == "" || refresh == "" {
		return &AuthError{Message: "response missing token fields", Response: resp}
	}

	c.setTokens(access, refresh)
	return nil
}

// Refresh exchanges the stored refresh token for a new token pair.
//
// On success both tokens are replaced atomically. On failure the previous
// pair stays in place and ErrRefreshFailed is returned; the caller decides
// whether to retry, re-authenticate with a fresh client, or give up.
// Refresh is never invoked automatically: detecting an expired access token
// (an unauthorized provider response) is the caller's responsibility.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	resp, err := c.post(ctx, "/api/v1/auth/refresh", map[string]any{
		"refresh_token": refresh,
	}, false)
	if err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("%w: provider returned status %d", ErrRefreshFailed, resp.StatusCode)
	}

	access := resp.String("access_token")
	newRefresh := resp.String("refresh_token")
	if access == "" || newRefresh == "" {
		return fmt.Errorf("%w: response missing token fields", ErrRefreshFailed)
	}

	c.setTokens(access, newRefresh)
	return nil
}

// AuthorizationHeader returns the headers attached to authenticated
// requests. Pure derivation from current token state, no network call.
func (c *Client) AuthorizationHeader() map[string]string {
	return map[string]string{
		"Authorization": c.bearer(),
		"Content-Type":  "application/json",
	}
}

// setTokens replaces the token pair under the lock so concurrent refreshes
// can never leave a mixed pair behind.
func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return "Bearer " + c.accessToken
}
