package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Mailcadence/mailcadence/internal/domain"
)

var recipientColumns = []string{
	"id", "email", "name", "company", "blacklisted", "created_at", "updated_at",
}

// RecipientRepository is the Postgres implementation of
// domain.RecipientRepository.
type RecipientRepository struct {
	db *sql.DB
}

// NewRecipientRepository creates a new PostgreSQL recipient repository
func NewRecipientRepository(db *sql.DB) *RecipientRepository {
	return &RecipientRepository{db: db}
}

// Create persists a recipient.
func (r *RecipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	query, args, err := sq.Insert("recipients").
		Columns(recipientColumns...).
		Values(recipient.ID, recipient.Email, recipient.Name, recipient.Company,
			recipient.Blacklisted, recipient.CreatedAt, recipient.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build recipient insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create recipient: %w", err)
	}
	return nil
}

// GetByID returns one recipient.
func (r *RecipientRepository) GetByID(ctx context.Context, id string) (*domain.Recipient, error) {
	query, args, err := sq.Select(recipientColumns...).
		From("recipients").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recipient select query: %w", err)
	}

	recipient, err := scanRecipient(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrRecipientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}
	return recipient, nil
}

// List returns every recipient, blacklisted included.
func (r *RecipientRepository) List(ctx context.Context) ([]*domain.Recipient, error) {
	return r.list(ctx, nil)
}

// ListActive returns the plannable population: everyone not blacklisted.
func (r *RecipientRepository) ListActive(ctx context.Context) ([]*domain.Recipient, error) {
	return r.list(ctx, sq.Eq{"blacklisted": false})
}

func (r *RecipientRepository) list(ctx context.Context, where interface{}) ([]*domain.Recipient, error) {
	builder := sq.Select(recipientColumns...).
		From("recipients").
		OrderBy("created_at ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recipient list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	defer rows.Close()

	var recipients []*domain.Recipient
	for rows.Next() {
		recipient, err := scanRecipient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, recipient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipients: %w", err)
	}
	return recipients, nil
}

// SetBlacklisted flips the recipient's blacklist flag.
func (r *RecipientRepository) SetBlacklisted(ctx context.Context, id string, blacklisted bool) error {
	query, args, err := sq.Update("recipients").
		Set("blacklisted", blacklisted).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build blacklist update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update recipient blacklist: %w", err)
	}
	return requireOneRow(result, domain.ErrRecipientNotFound)
}

// Delete removes the recipient.
func (r *RecipientRepository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("recipients").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build recipient delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete recipient: %w", err)
	}
	return requireOneRow(result, domain.ErrRecipientNotFound)
}

func scanRecipient(row rowScanner) (*domain.Recipient, error) {
	var recipient domain.Recipient
	err := row.Scan(
		&recipient.ID,
		&recipient.Email,
		&recipient.Name,
		&recipient.Company,
		&recipient.Blacklisted,
		&recipient.CreatedAt,
		&recipient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// interface guard
var _ domain.RecipientRepository = (*RecipientRepository)(nil)
