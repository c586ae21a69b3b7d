package fdi

import (
	"context"
	"fmt"
)

// SendParams are the inputs for a single-recipient send.
type SendParams struct {
	// MSISDN is the recipient number in any format NormalizeMSISDN accepts.
	MSISDN string

	// Message is the SMS body.
	Message string

	// MsgRef is the caller's unique reference for this message.
	MsgRef string

	// SenderID is the originating sender ID. Optional; serialized as null
	// when empty.
	SenderID string

	// CallbackURL receives the delivery report (the provider's "dlr"
	// field). Optional; serialized as null when empty.
	CallbackURL string
}

// BulkSendParams are the inputs for a multi-recipient send. The provider
// reuses the single-send endpoint with a list-valued msisdn field.
type BulkSendParams struct {
	MSISDNs     []string
	Message     string
	MsgRef      string
	SenderID    string
	CallbackURL string
}

// CheckHealth pings the provider status endpoint. No authentication.
func (c *Client) CheckHealth(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/api/v1/status", false)
}

// Balance returns the current credit balance.
func (c *Client) Balance(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/api/v1/balance/now", true)
}

// BalanceOnDate returns the closing credit balance for the given date
// (YYYY-MM-DD).
func (c *Client) BalanceOnDate(ctx context.Context, date string) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/api/v1/balance/%s/closing", date), true)
}

// SendSingle sends an SMS to one recipient. The recipient number is
// normalized first; a malformed number fails with ErrInvalidMobileNumber
// before any network traffic.
func (c *Client) SendSingle(ctx context.Context, p SendParams) (*Response, error) {
	msisdn, err := NormalizeMSISDN(p.MSISDN)
	if err != nil {
		return nil, err
	}

	return c.post(ctx, "/api/v1/mt/single", map[string]any{
		"msisdn":    msisdn,
		"message":   p.Message,
		"msgRef":    p.MsgRef,
		"sender_id": nullable(p.SenderID),
		"dlr":       nullable(p.CallbackURL),
	}, true)
}

// SendBulk sends one SMS body to a list of recipients. Every number is
// normalized; the first malformed one aborts the call.
func (c *Client) SendBulk(ctx context.Context, p BulkSendParams) (*Response, error) {
	cleaned := make([]string, 0, len(p.MSISDNs))
	for _, no := range p.MSISDNs {
		msisdn, err := NormalizeMSISDN(no)
		if err != nil {
			return nil, err
		}
		cleaned = append(cleaned, msisdn)
	}

	return c.post(ctx, "/api/v1/mt/single", map[string]any{
		"msisdn":    cleaned,
		"message":   p.Message,
		"msgRef":    p.MsgRef,
		"sender_id": nullable(p.SenderID),
		"dlr":       nullable(p.CallbackURL),
	}, true)
}

// Stats returns MT and MO message statistics for today (Central African
// Time, per the provider).
func (c *Client) Stats(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/api/v1/stats", true)
}

// StatsOnDate returns MT and MO message statistics for the given date
// (YYYY-MM-DD).
func (c *Client) StatsOnDate(ctx context.Context, date string) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/api/v1/stats/%s", date), true)
}

// ValidateMSISDN asks the provider whether a number is valid for a country.
// The number is normalized and the country code uppercased before the call.
func (c *Client) ValidateMSISDN(ctx context.Context, msisdn, countryCode string) (*Response, error) {
	normalized, err := NormalizeMSISDN(msisdn)
	if err != nil {
		return nil, err
	}

	return c.post(ctx, "/api/v1/validate/msisdn", map[string]any{
		"msisdn":      normalized,
		"countryCode": NormalizeCountryCode(countryCode),
	}, true)
}

// ValidateMSISDNBulk asks the provider to validate a list of numbers.
//
// Every input is normalized up front so malformed numbers fail fast, but the
// request body carries the caller's ORIGINAL list, not the cleaned one. This
// mirrors what existing integrations send today; see DESIGN.md before
// changing it.
func (c *Client) ValidateMSISDNBulk(ctx context.Context, msisdns []string, countryCode string) (*Response, error) {
	for _, no := range msisdns {
		if _, err := NormalizeMSISDN(no); err != nil {
			return nil, err
		}
	}

	return c.post(ctx, "/api/v1/validate/msisdn/bulk", map[string]any{
		"msisdn_list": msisdns,
		"countryCode": NormalizeCountryCode(countryCode),
	}, true)
}

// nullable maps an empty optional string to JSON null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
