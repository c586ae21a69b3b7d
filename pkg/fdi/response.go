package fdi

// Response is the provider's JSON envelope, passed through to the caller.
// Every endpoint returns at least a "success" boolean; the rest of the body
// is endpoint-specific and kept as decoded fields plus the raw text.
type Response struct {
	// Success mirrors the "success" field of the body. False when the
	// field is absent.
	Success bool

	// StatusCode is the HTTP status the provider answered with.
	StatusCode int

	// Body is the decoded JSON body. For non-200 GET responses that carry
	// no "success" field, this is a synthesized failure envelope with
	// "status" and "message" fields.
	Body map[string]any

	// Raw is the unparsed response text.
	Raw string
}

// Err classifies a non-success response by its HTTP status into one of the
// package's sentinel errors. It returns nil for successful responses.
// Business failures delivered with a 200 status map to ErrUnknown.
func (r *Response) Err() error {
	if r == nil {
		return ErrUnknown
	}
	if r.Success {
		return nil
	}
	if r.StatusCode == 200 {
		return ErrUnknown
	}
	return statusErr(r.StatusCode)
}

// String returns the named body field as a string, or "" when the field is
// absent or not a string.
func (r *Response) String(key string) string {
	s, _ := r.Body[key].(string)
	return s
}
