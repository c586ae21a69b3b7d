package sms

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/avicennajr/gofdisms/pkg/fdi"
)

var _ Gateway = (*FDIGateway)(nil)

// FDIGateway implements Gateway on top of the FDI client. It owns the one
// token-lifecycle decision the client leaves to callers: when the provider
// answers "unauthorized", the gateway refreshes the token once and retries
// the request. No further retries happen at this layer.
type FDIGateway struct {
	client      *fdi.Client
	senderID    string
	dlrCallback string
}

// NewFDIGateway wraps an authenticated FDI client. senderID and dlrCallback
// are applied to every outgoing message; either may be empty.
func NewFDIGateway(client *fdi.Client, senderID, dlrCallback string) *FDIGateway {
	return &FDIGateway{
		client:      client,
		senderID:    senderID,
		dlrCallback: dlrCallback,
	}
}

// Send implements Gateway.Send via the provider's single-send endpoint.
func (g *FDIGateway) Send(ctx context.Context, to, content, msgRef string) (string, string, error) {
	resp, err := g.call(ctx, func() (*fdi.Response, error) {
		return g.client.SendSingle(ctx, fdi.SendParams{
			MSISDN:      to,
			Message:     content,
			MsgRef:      msgRef,
			SenderID:    g.senderID,
			CallbackURL: g.dlrCallback,
		})
	})
	if err != nil {
		return "", "", err
	}

	if !resp.Success {
		return "", resp.Raw, fmt.Errorf("provider rejected message %s: %w", msgRef, resp.Err())
	}

	// The provider quotes our msgRef back on acceptance; fall back to it
	// when the response carries no reference of its own.
	gatewayRef := resp.String("gateway_ref")
	if gatewayRef == "" {
		gatewayRef = resp.String("msgRef")
	}
	if gatewayRef == "" {
		gatewayRef = msgRef
	}

	return gatewayRef, resp.Raw, nil
}

// Health implements Gateway.Health via the provider status endpoint.
func (g *FDIGateway) Health(ctx context.Context) error {
	resp, err := g.client.CheckHealth(ctx)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("provider unhealthy: %w", resp.Err())
	}
	return nil
}

// Balance implements Gateway.Balance.
func (g *FDIGateway) Balance(ctx context.Context, date string) (*fdi.Response, error) {
	return g.call(ctx, func() (*fdi.Response, error) {
		if date == "" {
			return g.client.Balance(ctx)
		}
		return g.client.BalanceOnDate(ctx, date)
	})
}

// Stats implements Gateway.Stats.
func (g *FDIGateway) Stats(ctx context.Context, date string) (*fdi.Response, error) {
	return g.call(ctx, func() (*fdi.Response, error) {
		if date == "" {
			return g.client.Stats(ctx)
		}
		return g.client.StatsOnDate(ctx, date)
	})
}

// Validate implements Gateway.Validate.
func (g *FDIGateway) Validate(ctx context.Context, msisdn, countryCode string) (*fdi.Response, error) {
	return g.call(ctx, func() (*fdi.Response, error) {
		return g.client.ValidateMSISDN(ctx, msisdn, countryCode)
	})
}

// ValidateBulk implements Gateway.ValidateBulk.
func (g *FDIGateway) ValidateBulk(ctx context.Context, msisdns []string, countryCode string) (*fdi.Response, error) {
	return g.call(ctx, func() (*fdi.Response, error) {
		return g.client.ValidateMSISDNBulk(ctx, msisdns, countryCode)
	})
}

// call runs one provider request with a single refresh-and-retry on an
// unauthorized response. A failed refresh is logged and the original
// unauthorized response returned, so the caller still sees what happened.
func (g *FDIGateway) call(ctx context.Context, fn func() (*fdi.Response, error)) (*fdi.Response, error) {
	resp, err := fn()
	if err != nil {
		return nil, err
	}

	if !errors.Is(resp.Err(), fdi.ErrUnauthorized) {
		return resp, nil
	}

	log.Println("[Gateway] Provider returned unauthorized, refreshing token...")
	if rErr := g.client.Refresh(ctx); rErr != nil {
		log.Printf("[Gateway] Token refresh failed: %v", rErr)
		return resp, nil
	}

	return fn()
}
