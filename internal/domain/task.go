package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_task_repository.go -package mocks github.com/Mailcadence/mailcadence/internal/domain TaskRepository

// TaskStatus is the lifecycle state of a send task. The scheduler is the
// only writer once a task has been started.
type TaskStatus string

const (
	// TaskStatusInitialized is a created task that has never been started,
	// or one whose runtime was wiped by a stop.
	TaskStatusInitialized TaskStatus = "initialized"
	// TaskStatusRunning is a task whose jobs are armed and dispatching.
	TaskStatusRunning TaskStatus = "running"
	// TaskStatusPaused is a task whose timers are cancelled but whose job
	// statuses are preserved.
	TaskStatusPaused TaskStatus = "paused"
	// TaskStatusCompleted is a task with no pending jobs left.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed is a task that could not be started.
	TaskStatusFailed TaskStatus = "failed"
)

// ControlAction is a lifecycle command applied to a send task.
type ControlAction string

const (
	ControlActionStart  ControlAction = "start"
	ControlActionPause  ControlAction = "pause"
	ControlActionResume ControlAction = "resume"
	ControlActionStop   ControlAction = "stop"
)

// Valid reports whether the action is a known control verb.
func (a ControlAction) Valid() bool {
	switch a {
	case ControlActionStart, ControlActionPause, ControlActionResume, ControlActionStop:
		return true
	}
	return false
}

// SendTask is the persisted record of a bulk send campaign. Per-job runtime
// state lives only in the scheduler and is rebuilt on every start.
type SendTask struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	Status                   TaskStatus `json:"status"`
	StartTime                *time.Time `json:"start_time,omitempty"`
	EndTime                  *time.Time `json:"end_time,omitempty"`
	DurationDays             *int       `json:"duration_days,omitempty"`
	EmailsPerHour            float64    `json:"emails_per_hour"`
	EmailsPerRecipientPerDay int        `json:"emails_per_recipient_per_day"`
	WorkingHours             int        `json:"working_hours"`
	SenderIDs                []string   `json:"sender_ids"`
	Subject                  string     `json:"subject"`
	Body                     string     `json:"body"`
	CreatedBy                string     `json:"created_by"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// Validate checks the fields required before a task can be persisted.
func (t *SendTask) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if len(t.SenderIDs) == 0 {
		return fmt.Errorf("at least one sender is required")
	}
	if t.EmailsPerHour <= 0 {
		return fmt.Errorf("emails per hour must be positive")
	}
	if t.EmailsPerRecipientPerDay < 1 {
		return fmt.Errorf("emails per recipient per day must be at least 1")
	}
	if t.WorkingHours < 1 || t.WorkingHours > 24 {
		return fmt.Errorf("working hours must be between 1 and 24")
	}
	return nil
}

// TaskRepository defines persistence for send tasks. Only the record-level
// fields are written by the control path; job runtime is never persisted.
type TaskRepository interface {
	Create(ctx context.Context, task *SendTask) error
	GetByID(ctx context.Context, id string) (*SendTask, error)
	List(ctx context.Context) ([]*SendTask, error)
	Update(ctx context.Context, task *SendTask) error

	// UpdateStatus persists a lifecycle transition along with the
	// start/end timestamps the transition established.
	UpdateStatus(ctx context.Context, id string, status TaskStatus, startTime, endTime *time.Time) error

	// Delete soft-deletes the task record.
	Delete(ctx context.Context, id string) error
}
