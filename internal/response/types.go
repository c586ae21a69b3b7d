package response

import (
	"time"

	domain "github.com/avicennajr/gofdisms/internal/domain/message"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

type SchedulerControlPayload struct {
	Message string `json:"message"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type SchedulerControlResponse struct {
	Success   bool                    `json:"success"`
	Data      SchedulerControlPayload `json:"data"`
	Timestamp string                  `json:"timestamp"`
}

// MessageDTO is a public-facing representation of an outbox message
// used in API responses. It decouples the wire format from
// the domain entity and plays nicely with Swagger.
type MessageDTO struct {
	ID         string     `json:"id"`
	To         string     `json:"to"`
	Content    string     `json:"content"`
	MsgRef     string     `json:"msgRef"`
	Status     string     `json:"status"`
	GatewayRef string     `json:"gatewayRef"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type CreatedMessageResponse struct {
	Success   bool       `json:"success"`
	Data      MessageDTO `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type SentMessagesPayload struct {
	Items []MessageDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type SentMessagesResponse struct {
	Success   bool                `json:"success"`
	Data      SentMessagesPayload `json:"data"`
	Timestamp string              `json:"timestamp"`
}

// ProviderResponse documents the shape of endpoints that pass the FDI
// payload through verbatim (balance, stats, validation).
type ProviderResponse struct {
	Success   bool           `json:"success"`
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

// FromDomainMessage converts a single domain message into its DTO.
func FromDomainMessage(m *domain.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID.String(),
		To:         m.To,
		Content:    m.Content,
		MsgRef:     m.MsgRef,
		Status:     string(m.Status),
		GatewayRef: m.GatewayRef,
		SentAt:     m.SentAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomainMessages converts domain messages into DTOs
// for use in HTTP responses.
func FromDomainMessages(msgs []*domain.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = FromDomainMessage(m)
	}
	return out
}
