package scheduler

import (
	"github.com/Mailcadence/mailcadence/internal/domain"
)

// MatrixStats aggregates the job statuses of one task.
type MatrixStats struct {
	Pending        int     `json:"pending"`
	Processing     int     `json:"processing"`
	Sent           int     `json:"sent"`
	Failed         int     `json:"failed"`
	Total          int     `json:"total"`
	SuccessRate    float64 `json:"success_rate"`
	CompletionRate float64 `json:"completion_rate"`
}

// BuildStatusMatrix projects the task's jobs into the sparse
// recipient -> sender -> status view, computing aggregate stats from the
// same pass.
func BuildStatusMatrix(store *JobStore, taskID string) (map[string]map[string]domain.JobStatus, MatrixStats) {
	matrix := make(map[string]map[string]domain.JobStatus)
	stats := MatrixStats{}

	for _, job := range store.ListByTask(taskID) {
		senders, ok := matrix[job.RecipientID]
		if !ok {
			senders = make(map[string]domain.JobStatus)
			matrix[job.RecipientID] = senders
		}
		senders[job.SenderID] = job.Status

		stats.Total++
		switch job.Status {
		case domain.JobStatusPending:
			stats.Pending++
		case domain.JobStatusProcessing:
			stats.Processing++
		case domain.JobStatusSent:
			stats.Sent++
		case domain.JobStatusFailed:
			stats.Failed++
		}
	}

	if done := stats.Sent + stats.Failed; done > 0 {
		stats.SuccessRate = float64(stats.Sent) / float64(done)
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Sent+stats.Failed) / float64(stats.Total)
	}

	return matrix, stats
}
