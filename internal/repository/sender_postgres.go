package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/pkg/crypto"
)

// senderColumns are the columns returned to callers. The encrypted secret is
// deliberately absent; it is only read by GetDecryptedSecret.
var senderColumns = []string{
	"id", "company_name", "email_account", "smtp_endpoint", "port", "tls",
	"sender_name", "enabled", "created_at", "updated_at",
}

// SenderRepository is the Postgres implementation of domain.SenderRepository.
// SMTP passwords are encrypted with the repository's secret key before they
// touch the database.
type SenderRepository struct {
	db        *sql.DB
	secretKey string
}

// NewSenderRepository creates a new PostgreSQL sender repository
func NewSenderRepository(db *sql.DB, secretKey string) *SenderRepository {
	return &SenderRepository{db: db, secretKey: secretKey}
}

// Create persists a sender. The secret arrives in plaintext on
// EncryptedSecret and is encrypted before the insert.
func (r *SenderRepository) Create(ctx context.Context, sender *domain.Sender) error {
	encrypted, err := crypto.EncryptString(sender.EncryptedSecret, r.secretKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt sender secret: %w", err)
	}
	sender.EncryptedSecret = ""

	query, args, err := sq.Insert("senders").
		Columns("id", "company_name", "email_account", "smtp_endpoint", "port", "tls",
			"sender_name", "enabled", "encrypted_secret", "created_at", "updated_at").
		Values(sender.ID, sender.CompanyName, sender.EmailAccount, sender.SMTPEndpoint,
			sender.Port, sender.TLS, sender.SenderName, sender.Enabled, encrypted,
			sender.CreatedAt, sender.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sender insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	return nil
}

// GetByID returns one sender without its secret.
func (r *SenderRepository) GetByID(ctx context.Context, id string) (*domain.Sender, error) {
	query, args, err := sq.Select(senderColumns...).
		From("senders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sender select query: %w", err)
	}

	sender, err := scanSender(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSenderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sender: %w", err)
	}
	return sender, nil
}

// GetByIDs returns the senders matching ids; missing ids are simply absent
// from the result.
func (r *SenderRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Sender, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sq.Select(senderColumns...).
		From("senders").
		Where(sq.Eq{"id": ids}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sender select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query senders: %w", err)
	}
	defer rows.Close()

	senders, err := collectSenders(rows)
	if err != nil {
		return nil, err
	}

	// Preserve the caller's ordering; sender position is load-bearing for
	// the planner's grouping.
	byID := make(map[string]*domain.Sender, len(senders))
	for _, sender := range senders {
		byID[sender.ID] = sender
	}
	ordered := make([]*domain.Sender, 0, len(senders))
	for _, id := range ids {
		if sender, ok := byID[id]; ok {
			ordered = append(ordered, sender)
		}
	}
	return ordered, nil
}

// List returns all senders without their secrets.
func (r *SenderRepository) List(ctx context.Context) ([]*domain.Sender, error) {
	query, args, err := sq.Select(senderColumns...).
		From("senders").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sender list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list senders: %w", err)
	}
	defer rows.Close()

	return collectSenders(rows)
}

// Update rewrites the sender's mutable fields. The secret is only touched
// when a new plaintext value is provided.
func (r *SenderRepository) Update(ctx context.Context, sender *domain.Sender) error {
	builder := sq.Update("senders").
		Set("company_name", sender.CompanyName).
		Set("email_account", sender.EmailAccount).
		Set("smtp_endpoint", sender.SMTPEndpoint).
		Set("port", sender.Port).
		Set("tls", sender.TLS).
		Set("sender_name", sender.SenderName).
		Set("enabled", sender.Enabled).
		Set("updated_at", sender.UpdatedAt).
		Where(sq.Eq{"id": sender.ID})

	if sender.EncryptedSecret != "" {
		encrypted, err := crypto.EncryptString(sender.EncryptedSecret, r.secretKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt sender secret: %w", err)
		}
		sender.EncryptedSecret = ""
		builder = builder.Set("encrypted_secret", encrypted)
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sender update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sender: %w", err)
	}
	return requireOneRow(result, domain.ErrSenderNotFound)
}

// Delete removes the sender.
func (r *SenderRepository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("senders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sender delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete sender: %w", err)
	}
	return requireOneRow(result, domain.ErrSenderNotFound)
}

// GetDecryptedSecret returns the plaintext SMTP password for a sender.
func (r *SenderRepository) GetDecryptedSecret(ctx context.Context, id string) (string, error) {
	query, args, err := sq.Select("encrypted_secret").
		From("senders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build secret select query: %w", err)
	}

	var encrypted string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", domain.ErrSenderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get sender secret: %w", err)
	}

	secret, err := crypto.DecryptFromHexString(encrypted, r.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt sender secret: %w", err)
	}
	return secret, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSender(row rowScanner) (*domain.Sender, error) {
	var sender domain.Sender
	err := row.Scan(
		&sender.ID,
		&sender.CompanyName,
		&sender.EmailAccount,
		&sender.SMTPEndpoint,
		&sender.Port,
		&sender.TLS,
		&sender.SenderName,
		&sender.Enabled,
		&sender.CreatedAt,
		&sender.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sender, nil
}

func collectSenders(rows *sql.Rows) ([]*domain.Sender, error) {
	var senders []*domain.Sender
	for rows.Next() {
		sender, err := scanSender(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sender: %w", err)
		}
		senders = append(senders, sender)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate senders: %w", err)
	}
	return senders, nil
}

// requireOneRow converts a zero-row update/delete into notFound.
func requireOneRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

// interface guard
var _ domain.SenderRepository = (*SenderRepository)(nil)
