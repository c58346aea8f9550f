package sendbackend

import (
	"context"
	"fmt"
	"time"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/pkg/logger"
	"github.com/Mailcadence/mailcadence/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
	"golang.org/x/sync/semaphore"
)

// SMTPConfig tunes the real delivery path.
type SMTPConfig struct {
	// MaxConcurrentConnections caps simultaneous SMTP sessions.
	MaxConcurrentConnections int64 `json:"max_concurrent_connections"`

	// DialTimeout bounds one delivery, connection included.
	DialTimeout time.Duration `json:"dial_timeout"`

	// Anti-spam envelope per sender, same semantics as the simulator.
	PerMinuteLimit int `json:"per_minute_limit"`
	PerHourLimit   int `json:"per_hour_limit"`
}

// DefaultSMTPConfig returns a configuration with sensible defaults
func DefaultSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		MaxConcurrentConnections: 10,
		DialTimeout:              30 * time.Second,
		PerMinuteLimit:           30,
		PerHourLimit:             500,
	}
}

// SMTPBackend delivers through each sender's own SMTP endpoint. Credentials
// are resolved per send from the sender repository, which decrypts them; the
// plaintext never leaves this call.
type SMTPBackend struct {
	config        *SMTPConfig
	senderRepo    domain.SenderRepository
	recipientRepo domain.RecipientRepository
	envelope      *ratelimiter.SlidingWindows
	sessions      *semaphore.Weighted
	logger        logger.Logger
}

// NewSMTPBackend creates a send backend delivering over SMTP.
func NewSMTPBackend(config *SMTPConfig, senderRepo domain.SenderRepository, recipientRepo domain.RecipientRepository, logger logger.Logger) *SMTPBackend {
	if config == nil {
		config = DefaultSMTPConfig()
	}

	envelope := ratelimiter.NewSlidingWindows(
		ratelimiter.WindowPolicy{Name: "minute", MaxEvents: config.PerMinuteLimit, Window: time.Minute},
		ratelimiter.WindowPolicy{Name: "hour", MaxEvents: config.PerHourLimit, Window: time.Hour},
	)

	return &SMTPBackend{
		config:        config,
		senderRepo:    senderRepo,
		recipientRepo: recipientRepo,
		envelope:      envelope,
		sessions:      semaphore.NewWeighted(config.MaxConcurrentConnections),
		logger:        logger,
	}
}

// Send delivers one message through the sender's SMTP endpoint.
func (b *SMTPBackend) Send(ctx context.Context, senderID, recipientID, subject, body string) (*domain.SendReceipt, error) {
	if b.envelope.Exceeded(senderID) {
		return nil, &AntiSpamError{SenderID: senderID, Window: "minute/hour"}
	}

	sender, err := b.senderRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	recipient, err := b.recipientRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}
	secret, err := b.senderRepo.GetDecryptedSecret(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender credentials: %w", err)
	}

	if err := b.sessions.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer b.sessions.Release(1)

	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(sender.SenderName, sender.EmailAccount); err != nil {
		return nil, fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(recipient.Email); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	options := []mail.Option{
		mail.WithPort(sender.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(sender.EmailAccount),
		mail.WithPassword(secret),
		mail.WithTimeout(b.config.DialTimeout),
	}
	if sender.TLS {
		options = append(options, mail.WithSSLPort(false))
	} else {
		options = append(options, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(sender.SMTPEndpoint, options...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		b.logger.WithFields(map[string]interface{}{
			"sender_id":    senderID,
			"recipient_id": recipientID,
			"endpoint":     sender.SMTPEndpoint,
			"error":        err.Error(),
		}).Warn("SMTP delivery failed")
		return nil, err
	}

	b.envelope.Record(senderID)

	return &domain.SendReceipt{
		MessageID: uuid.New().String(),
		SentAt:    time.Now(),
	}, nil
}

// Stop releases the envelope's cleanup goroutine.
func (b *SMTPBackend) Stop() {
	b.envelope.Stop()
}
