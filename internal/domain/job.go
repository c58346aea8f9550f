package domain

import (
	"time"
)

// JobStatus is the state of a single planned send.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusSent       JobStatus = "sent"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status cannot transition further.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSent || s == JobStatusFailed
}

// Job is one planned send of a task: a (sender, recipient) pairing bound to
// a wall-clock instant. Jobs exist only in memory, created on task start and
// deleted on stop or reset.
type Job struct {
	ID           string     `json:"id"`
	TaskID       string     `json:"task_id"`
	SenderID     string     `json:"sender_id"`
	RecipientID  string     `json:"recipient_id"`
	Day          int        `json:"day"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	Status       JobStatus  `json:"status"`
	Attempts     int        `json:"attempts"`
	ErrorMessage string     `json:"error_message,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}
