package request

// SchedulerRequest represents the JSON body for scheduler control.
type SchedulerRequest struct {
	// Action controls the scheduler. Allowed values:
	// - "start": start draining outbox batches
	// - "stop":  stop draining outbox batches
	Action string `json:"action"`
}

// CreateMessageRequest is the JSON body for enqueueing a message.
// The recipient may be in any national or international format; it is
// normalized before the message enters the outbox.
type CreateMessageRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// ValidateRequest is the JSON body for number validation. Either a single
// msisdn or a msisdn_list must be set; the list routes to the provider's
// bulk endpoint.
type ValidateRequest struct {
	MSISDN      string   `json:"msisdn,omitempty"`
	MSISDNList  []string `json:"msisdn_list,omitempty"`
	CountryCode string   `json:"countryCode"`
}
