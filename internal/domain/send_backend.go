package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_send_backend.go -package mocks github.com/Mailcadence/mailcadence/internal/domain SendBackend

// SendReceipt is the successful result of a dispatch.
type SendReceipt struct {
	MessageID string    `json:"message_id"`
	SentAt    time.Time `json:"sent_at"`
}

// SendBackend performs or simulates a single dispatch. Implementations
// enforce their own per-sender anti-spam envelope and may block for the
// duration of the transport latency; callers must not hold locks across a
// Send call.
type SendBackend interface {
	Send(ctx context.Context, senderID, recipientID, subject, body string) (*SendReceipt, error)
}
