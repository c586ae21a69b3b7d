// Package sms exposes the gateway contract for the SMS provider and its
// FDI-backed implementation.
package sms

import (
	"context"

	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// Gateway is the contract the service layer uses to reach the provider.
type Gateway interface {
	// Send sends an SMS to the given recipient under the given msgRef.
	// Returns the provider's reference for the message, the raw provider
	// response, and an error if the message was not accepted.
	Send(ctx context.Context, to, content, msgRef string) (gatewayRef string, rawResponse string, err error)

	// Health checks whether the provider is reachable and usable.
	Health(ctx context.Context) error

	// Balance returns the credit balance; date "" means current,
	// otherwise the closing balance for that date (YYYY-MM-DD).
	Balance(ctx context.Context, date string) (*fdi.Response, error)

	// Stats returns MT/MO traffic statistics; date "" means today.
	Stats(ctx context.Context, date string) (*fdi.Response, error)

	// Validate asks the provider whether a number is valid for a country.
	Validate(ctx context.Context, msisdn, countryCode string) (*fdi.Response, error)

	// ValidateBulk validates a list of numbers for a country.
	ValidateBulk(ctx context.Context, msisdns []string, countryCode string) (*fdi.Response, error)
}
