package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key"

func setupSenderRepo(t *testing.T) (*SenderRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSenderRepository(db, testSecretKey), mock
}

func senderRows() *sqlmock.Rows {
	return sqlmock.NewRows(senderColumns)
}

func addSenderRow(rows *sqlmock.Rows, id string, enabled bool) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "Acme", id+"@acme.test", "smtp.acme.test", 587, true,
		"Acme Sales", enabled, now, now)
}

func TestSenderRepository_Create(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	sender := &domain.Sender{
		ID:              "s-1",
		CompanyName:     "Acme",
		EmailAccount:    "sales@acme.test",
		SMTPEndpoint:    "smtp.acme.test",
		Port:            587,
		TLS:             true,
		SenderName:      "Acme Sales",
		Enabled:         true,
		EncryptedSecret: "hunter2",
	}

	mock.ExpectExec("INSERT INTO senders").
		WithArgs(sender.ID, sender.CompanyName, sender.EmailAccount, sender.SMTPEndpoint,
			sender.Port, sender.TLS, sender.SenderName, sender.Enabled, sqlmock.AnyArg(),
			sender.CreatedAt, sender.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), sender))

	// The plaintext never survives the call.
	assert.Empty(t, sender.EncryptedSecret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSenderRepository_GetByID(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM senders").
		WithArgs("s-1").
		WillReturnRows(addSenderRow(senderRows(), "s-1", true))

	sender, err := repo.GetByID(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", sender.ID)
	assert.Empty(t, sender.EncryptedSecret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSenderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM senders").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSenderNotFound)
}

func TestSenderRepository_GetByIDs_PreservesOrder(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	// The database returns rows in creation order; the repository reorders
	// them to match the requested ids.
	rows := senderRows()
	addSenderRow(rows, "s-1", true)
	addSenderRow(rows, "s-2", true)
	mock.ExpectQuery("SELECT (.+) FROM senders").
		WillReturnRows(rows)

	senders, err := repo.GetByIDs(context.Background(), []string{"s-2", "s-1"})
	require.NoError(t, err)
	require.Len(t, senders, 2)
	assert.Equal(t, "s-2", senders[0].ID)
	assert.Equal(t, "s-1", senders[1].ID)
}

func TestSenderRepository_GetByIDs_Empty(t *testing.T) {
	repo, _ := setupSenderRepo(t)

	senders, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, senders)
}

func TestSenderRepository_Update_NotFound(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	mock.ExpectExec("UPDATE senders").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Sender{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrSenderNotFound)
}

func TestSenderRepository_Delete(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	mock.ExpectExec("DELETE FROM senders").
		WithArgs("s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "s-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSenderRepository_GetDecryptedSecret(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	encrypted, err := crypto.EncryptString("hunter2", testSecretKey)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT encrypted_secret FROM senders").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"encrypted_secret"}).AddRow(encrypted))

	secret, err := repo.GetDecryptedSecret(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)
}

func TestSenderRepository_GetDecryptedSecret_NotFound(t *testing.T) {
	repo, mock := setupSenderRepo(t)

	mock.ExpectQuery("SELECT encrypted_secret FROM senders").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDecryptedSecret(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSenderNotFound)
}
