package fdi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMobileNumber is returned when a mobile number has fewer
	// than 9 or more than 12 digits after cleaning.
	ErrInvalidMobileNumber = errors.New("invalid mobile number")

	// ErrRefreshFailed is returned when the provider declines a token
	// refresh. The previously stored token pair is left in place.
	ErrRefreshFailed = errors.New("token refresh failed")
)

// Sentinel errors for the provider's HTTP failure statuses.
// Response.Err classifies a non-success response into one of these.
var (
	ErrBadRequest    = errors.New("bad request: malformed request or missing required parameters")
	ErrUnauthorized  = errors.New("unauthorized: access token is missing or expired")
	ErrForbidden     = errors.New("forbidden: insufficient access rights for this resource")
	ErrNotFound      = errors.New("not found: the requested resource does not exist")
	ErrUnprocessable = errors.New("unprocessable entity: parameters are present but not valid for this request")
	ErrInternal      = errors.New("internal server error: provider-side failure, retry later")
	ErrUnavailable   = errors.New("service unavailable: provider is temporarily offline")
	ErrUnknown       = errors.New("unknown provider error")
)

// AuthError reports a failed initial credential exchange.
type AuthError struct {
	Message  string
	Response *Response
}

func (e *AuthError) Error() string {
	return "fdi: authentication failed: " + e.Message
}

// TransportError reports a network-level failure, as opposed to an HTTP
// error response from the provider.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fdi: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// statusErr maps an HTTP status code to its sentinel error.
func statusErr(code int) error {
	switch code {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 422:
		return ErrUnprocessable
	case 500:
		return ErrInternal
	case 503:
		return ErrUnavailable
	default:
		return ErrUnknown
	}
}
