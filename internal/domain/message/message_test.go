package message

import (
	"errors"
	"strings"
	"testing"

	"github.com/avicennajr/gofdisms/pkg/fdi"
)

func TestNewMessage_NormalizesRecipient(t *testing.T) {
	m, err := NewMessage("0788123456", "hello")
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}

	if m.To != "250788123456" {
		t.Fatalf("To = %q, want normalized %q", m.To, "250788123456")
	}
	if m.Status != StatusPending {
		t.Fatalf("Status = %q, want %q", m.Status, StatusPending)
	}
	if m.MsgRef == "" {
		t.Fatalf("MsgRef is empty, want a generated reference")
	}
	if m.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt is zero")
	}
}

func TestNewMessage_UniqueMsgRefs(t *testing.T) {
	a, _ := NewMessage("788123456", "one")
	b, _ := NewMessage("788123456", "two")

	if a.MsgRef == b.MsgRef {
		t.Fatalf("two messages share msgRef %q", a.MsgRef)
	}
}

func TestNewMessage_Rules(t *testing.T) {
	cases := []struct {
		name    string
		to      string
		content string
		wantErr error
	}{
		{"empty recipient", "", "hi", ErrEmptyRecipient},
		{"empty content", "0788123456", "  ", ErrEmptyContent},
		{"content too long", "0788123456", strings.Repeat("x", MaxContentLength+1), ErrContentTooLong},
		{"invalid recipient", "12345", "hi", fdi.ErrInvalidMobileNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewMessage(tc.to, tc.content); !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewMessage(%q, ...) error = %v, want %v", tc.to, err, tc.wantErr)
			}
		})
	}
}

func TestMarkSentAndFailed(t *testing.T) {
	m, _ := NewMessage("0788123456", "hi")

	m.MarkSent("gw-1", `{"success":true}`)
	if m.Status != StatusSuccess || m.GatewayRef != "gw-1" || m.SentAt == nil {
		t.Fatalf("after MarkSent: status=%q gatewayRef=%q sentAt=%v", m.Status, m.GatewayRef, m.SentAt)
	}

	m2, _ := NewMessage("0788123456", "hi")
	m2.MarkFailed(`{"success":false}`)
	if m2.Status != StatusFailed || m2.SentAt != nil {
		t.Fatalf("after MarkFailed: status=%q sentAt=%v", m2.Status, m2.SentAt)
	}
}
