package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_sender_repository.go -package mocks github.com/Mailcadence/mailcadence/internal/domain SenderRepository

// Sender is an SMTP account used to deliver campaign mail.
// The SMTP secret is encrypted at rest and never leaves the repository layer.
type Sender struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	EmailAccount string    `json:"email_account"`
	SMTPEndpoint string    `json:"smtp_endpoint"`
	Port         int       `json:"port"`
	TLS          bool      `json:"tls"`
	SenderName   string    `json:"sender_name"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// EncryptedSecret holds the AES-GCM encrypted SMTP password.
	// Excluded from every serialized representation.
	EncryptedSecret string `json:"-"`
}

// Validate checks the fields required before a sender can be persisted.
func (s *Sender) Validate() error {
	if s.EmailAccount == "" {
		return fmt.Errorf("email account is required")
	}
	if !govalidator.IsEmail(s.EmailAccount) {
		return fmt.Errorf("invalid email account: %s", s.EmailAccount)
	}
	if s.SMTPEndpoint == "" {
		return fmt.Errorf("smtp endpoint is required")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid smtp port: %d", s.Port)
	}
	return nil
}

// SenderRepository defines persistence for senders.
type SenderRepository interface {
	Create(ctx context.Context, sender *Sender) error
	GetByID(ctx context.Context, id string) (*Sender, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Sender, error)
	List(ctx context.Context) ([]*Sender, error)
	Update(ctx context.Context, sender *Sender) error
	Delete(ctx context.Context, id string) error

	// GetDecryptedSecret returns the plaintext SMTP password for a sender.
	// Only the send backend calls this.
	GetDecryptedSecret(ctx context.Context, id string) (string, error)
}
