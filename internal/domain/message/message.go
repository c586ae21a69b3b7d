// Package message holds the domain model and invariants for outbox messages.
package message

import (
	"errors"
	"strings"
	"time"

	"github.com/avicennajr/gofdisms/pkg/fdi"
	"github.com/google/uuid"
)

const (
	// MaxContentLength is the maximum allowed length for message content,
	// one GSM-7 SMS segment.
	MaxContentLength = 160
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

var (
	// ErrEmptyRecipient is returned when no recipient phone number is provided.
	ErrEmptyRecipient = errors.New("recipient phone number is required")
	// ErrEmptyContent is returned when the message body is empty.
	ErrEmptyContent = errors.New("message content is required")
	// ErrContentTooLong is returned when the message body exceeds MaxContentLength.
	ErrContentTooLong = errors.New("message content exceeds maximum length")
)

// Message is the core domain entity representing an outgoing SMS message.
// To always holds the recipient in normalized international digit form.
type Message struct {
	ID          uuid.UUID
	To          string
	Content     string
	MsgRef      string
	Status      Status
	GatewayRef  string
	RawResponse string
	SentAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMessage constructs a new pending Message and enforces the domain rules.
// The recipient is normalized at the door; a number the gateway cannot
// address fails here with fdi.ErrInvalidMobileNumber rather than at send
// time. Each message gets a fresh msgRef, the unique reference quoted to
// the provider and in delivery reports.
func NewMessage(to, content string) (*Message, error) {
	to = strings.TrimSpace(to)
	content = strings.TrimSpace(content)

	if to == "" {
		return nil, ErrEmptyRecipient
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	normalized, err := fdi.NormalizeMSISDN(to)
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:        uuid.New(),
		To:        normalized,
		Content:   content,
		MsgRef:    uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// MarkSent marks the message as successfully sent and records the gateway's
// reference plus the raw provider response.
func (m *Message) MarkSent(gatewayRef string, raw string) {
	now := time.Now()
	m.SentAt = &now
	m.Status = StatusSuccess
	m.GatewayRef = gatewayRef
	m.RawResponse = raw
}

// MarkFailed marks the message as failed and stores the raw provider response.
func (m *Message) MarkFailed(raw string) {
	m.Status = StatusFailed
	m.RawResponse = raw
}
