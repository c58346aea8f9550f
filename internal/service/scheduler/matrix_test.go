package scheduler

import (
	"testing"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatusMatrix(t *testing.T) {
	store := NewJobStore()
	add := func(id, senderID, recipientID string, status domain.JobStatus) {
		store.Add(&domain.Job{
			ID:          id,
			TaskID:      "task-1",
			SenderID:    senderID,
			RecipientID: recipientID,
			Status:      status,
		})
	}

	add("j-1", "s-1", "r-1", domain.JobStatusSent)
	add("j-2", "s-2", "r-1", domain.JobStatusFailed)
	add("j-3", "s-1", "r-2", domain.JobStatusPending)
	add("j-4", "s-2", "r-2", domain.JobStatusProcessing)

	matrix, stats := BuildStatusMatrix(store, "task-1")

	require.Len(t, matrix, 2)
	assert.Equal(t, domain.JobStatusSent, matrix["r-1"]["s-1"])
	assert.Equal(t, domain.JobStatusFailed, matrix["r-1"]["s-2"])
	assert.Equal(t, domain.JobStatusPending, matrix["r-2"]["s-1"])
	assert.Equal(t, domain.JobStatusProcessing, matrix["r-2"]["s-2"])

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Processing)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Failed)
	assert.InDelta(t, 0.5, stats.SuccessRate, 1e-9)
	assert.InDelta(t, 0.5, stats.CompletionRate, 1e-9)
}

func TestBuildStatusMatrix_EmptyTask(t *testing.T) {
	matrix, stats := BuildStatusMatrix(NewJobStore(), "task-1")

	assert.Empty(t, matrix)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.SuccessRate)
	assert.Zero(t, stats.CompletionRate)
}

func TestBuildStatusMatrix_IsolatedPerTask(t *testing.T) {
	store := NewJobStore()
	store.Add(&domain.Job{ID: "j-1", TaskID: "task-1", SenderID: "s-1", RecipientID: "r-1", Status: domain.JobStatusSent})
	store.Add(&domain.Job{ID: "j-2", TaskID: "task-2", SenderID: "s-1", RecipientID: "r-1", Status: domain.JobStatusFailed})

	matrix, stats := BuildStatusMatrix(store, "task-1")
	assert.Equal(t, domain.JobStatusSent, matrix["r-1"]["s-1"])
	assert.Equal(t, 1, stats.Total)
	assert.Zero(t, stats.Failed)
}
