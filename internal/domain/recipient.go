package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_recipient_repository.go -package mocks github.com/Mailcadence/mailcadence/internal/domain RecipientRepository

// Recipient is a destination mailbox in the campaign population.
type Recipient struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Company     string    `json:"company,omitempty"`
	Blacklisted bool      `json:"blacklisted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the fields required before a recipient can be persisted.
func (r *Recipient) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !govalidator.IsEmail(r.Email) {
		return fmt.Errorf("invalid email: %s", r.Email)
	}
	return nil
}

// RecipientRepository defines persistence for recipients.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *Recipient) error
	GetByID(ctx context.Context, id string) (*Recipient, error)
	List(ctx context.Context) ([]*Recipient, error)

	// ListActive returns recipients eligible for planning, excluding
	// blacklisted entries.
	ListActive(ctx context.Context) ([]*Recipient, error)

	SetBlacklisted(ctx context.Context, id string, blacklisted bool) error
	Delete(ctx context.Context, id string) error
}
