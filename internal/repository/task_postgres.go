package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/lib/pq"
)

var taskColumns = []string{
	"id", "name", "status", "start_time", "end_time", "duration_days",
	"emails_per_hour", "emails_per_recipient_per_day", "working_hours",
	"sender_ids", "subject", "body", "created_by", "created_at", "updated_at",
}

// TaskRepository is the Postgres implementation of domain.TaskRepository.
// Only the task record is persisted; per-job runtime lives in the scheduler.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new PostgreSQL task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task record.
func (r *TaskRepository) Create(ctx context.Context, task *domain.SendTask) error {
	query, args, err := sq.Insert("send_tasks").
		Columns(taskColumns...).
		Values(task.ID, task.Name, task.Status, task.StartTime, task.EndTime,
			task.DurationDays, task.EmailsPerHour, task.EmailsPerRecipientPerDay,
			task.WorkingHours, pq.Array(task.SenderIDs), task.Subject, task.Body,
			task.CreatedBy, task.CreatedAt, task.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build task insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID returns one task, excluding soft-deleted records.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.SendTask, error) {
	query, args, err := sq.Select(taskColumns...).
		From("send_tasks").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build task select query: %w", err)
	}

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// List returns all live task records, newest first.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.SendTask, error) {
	query, args, err := sq.Select(taskColumns...).
		From("send_tasks").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build task list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.SendTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Update rewrites the task's mutable fields.
func (r *TaskRepository) Update(ctx context.Context, task *domain.SendTask) error {
	query, args, err := sq.Update("send_tasks").
		Set("name", task.Name).
		Set("status", task.Status).
		Set("start_time", task.StartTime).
		Set("end_time", task.EndTime).
		Set("duration_days", task.DurationDays).
		Set("emails_per_hour", task.EmailsPerHour).
		Set("emails_per_recipient_per_day", task.EmailsPerRecipientPerDay).
		Set("working_hours", task.WorkingHours).
		Set("sender_ids", pq.Array(task.SenderIDs)).
		Set("subject", task.Subject).
		Set("body", task.Body).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"id": task.ID, "deleted_at": nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build task update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireOneRow(result, domain.ErrTaskNotFound)
}

// UpdateStatus persists a lifecycle transition.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, startTime, endTime *time.Time) error {
	query, args, err := sq.Update("send_tasks").
		Set("status", status).
		Set("start_time", startTime).
		Set("end_time", endTime).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build task status update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return requireOneRow(result, domain.ErrTaskNotFound)
}

// Delete soft-deletes the task record.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Update("send_tasks").
		Set("deleted_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build task delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireOneRow(result, domain.ErrTaskNotFound)
}

func scanTask(row rowScanner) (*domain.SendTask, error) {
	var task domain.SendTask
	var senderIDs pq.StringArray
	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Status,
		&task.StartTime,
		&task.EndTime,
		&task.DurationDays,
		&task.EmailsPerHour,
		&task.EmailsPerRecipientPerDay,
		&task.WorkingHours,
		&senderIDs,
		&task.Subject,
		&task.Body,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.SenderIDs = senderIDs
	return &task, nil
}

// interface guard
var _ domain.TaskRepository = (*TaskRepository)(nil)
