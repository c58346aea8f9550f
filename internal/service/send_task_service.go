package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/internal/service/planner"
	"github.com/Mailcadence/mailcadence/internal/service/scheduler"
	"github.com/Mailcadence/mailcadence/pkg/logger"
	"github.com/google/uuid"
)

//go:generate mockgen -destination mocks/mock_send_task_service.go -package mocks github.com/Mailcadence/mailcadence/internal/service SendTaskServiceInterface

// SendTaskServiceInterface is the control plane for send tasks: CRUD, plan
// calculation and lifecycle control.
type SendTaskServiceInterface interface {
	CreateTask(ctx context.Context, task *domain.SendTask) error
	GetTask(ctx context.Context, id string) (*domain.SendTask, error)
	ListTasks(ctx context.Context) ([]*domain.SendTask, error)
	Calculate(ctx context.Context, taskID string) (*domain.Plan, error)
	Control(ctx context.Context, taskID string, action domain.ControlAction) error
	Status(ctx context.Context, taskID string) (*TaskStatusReport, error)
	Reset(ctx context.Context) error
}

// TaskStatusReport is the full status view served to API callers: the task
// record, its senders, the live runtime snapshot and the status matrix.
type TaskStatusReport struct {
	Task         *domain.SendTask                      `json:"task"`
	Senders      []*domain.Sender                      `json:"senders"`
	Runtime      *scheduler.TaskSnapshot               `json:"runtime,omitempty"`
	StatusMatrix map[string]map[string]domain.JobStatus `json:"status_matrix"`
	MatrixStats  scheduler.MatrixStats                 `json:"matrix_stats"`
}

// SendTaskService orchestrates tasks across the repositories, the planner and
// the scheduler. Plans are cached in memory per task between Calculate and
// start; a process restart therefore requires recalculation before starting.
type SendTaskService struct {
	taskRepo      domain.TaskRepository
	senderRepo    domain.SenderRepository
	recipientRepo domain.RecipientRepository
	planner       *planner.Planner
	scheduler     scheduler.SchedulerInterface
	logger        logger.Logger

	mu    sync.Mutex
	plans map[string]*domain.Plan
}

// NewSendTaskService creates a new send task service
func NewSendTaskService(
	taskRepo domain.TaskRepository,
	senderRepo domain.SenderRepository,
	recipientRepo domain.RecipientRepository,
	taskPlanner *planner.Planner,
	taskScheduler scheduler.SchedulerInterface,
	logger logger.Logger,
) *SendTaskService {
	return &SendTaskService{
		taskRepo:      taskRepo,
		senderRepo:    senderRepo,
		recipientRepo: recipientRepo,
		planner:       taskPlanner,
		scheduler:     taskScheduler,
		logger:        logger,
		plans:         make(map[string]*domain.Plan),
	}
}

// CreateTask validates and persists a new task in the initialized state.
func (s *SendTaskService) CreateTask(ctx context.Context, task *domain.SendTask) error {
	if err := task.Validate(); err != nil {
		return domain.NewCampaignError(domain.ErrCodeValidation, "invalid task", err)
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.Status = domain.TaskStatusInitialized
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to create task", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"task_id": task.ID,
		"name":    task.Name,
		"senders": len(task.SenderIDs),
	}).Info("Task created")

	return nil
}

// GetTask returns one task record.
func (s *SendTaskService) GetTask(ctx context.Context, id string) (*domain.SendTask, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeTaskNotFound, "task not found", err)
	}
	return task, nil
}

// ListTasks returns all task records.
func (s *SendTaskService) ListTasks(ctx context.Context) ([]*domain.SendTask, error) {
	return s.taskRepo.List(ctx)
}

// Calculate resolves the task's senders and the active recipient population,
// runs the planner and caches the result for a subsequent start. The task's
// duration is persisted from the calculated day count.
func (s *SendTaskService) Calculate(ctx context.Context, taskID string) (*domain.Plan, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeTaskNotFound, "task not found", err)
	}

	senders, err := s.resolveSenders(ctx, task)
	if err != nil {
		return nil, err
	}

	recipients, err := s.recipientRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeInternal, "failed to list recipients", err)
	}
	if len(recipients) == 0 {
		return nil, domain.NewCampaignError(domain.ErrCodeNoReceiveEmails, "no active recipients to send to", nil)
	}

	senderIDs := make([]string, len(senders))
	for i, sender := range senders {
		senderIDs[i] = sender.ID
	}
	recipientIDs := make([]string, len(recipients))
	for i, recipient := range recipients {
		recipientIDs[i] = recipient.ID
	}

	plan := s.planner.Plan(domain.PlanParams{
		SenderIDs:                senderIDs,
		RecipientIDs:             recipientIDs,
		EmailsPerHour:            task.EmailsPerHour,
		EmailsPerRecipientPerDay: task.EmailsPerRecipientPerDay,
		WorkingHours:             task.WorkingHours,
	})

	task.DurationDays = &plan.CalculatedDays
	task.UpdatedAt = time.Now().UTC()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeInternal, "failed to persist calculation", err)
	}

	s.mu.Lock()
	s.plans[taskID] = plan
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"task_id":      taskID,
		"total_emails": plan.TotalEmails,
		"days":         plan.CalculatedDays,
		"groups":       plan.GroupInfo.TotalGroups,
	}).Info("Task plan calculated")

	return plan, nil
}

// Control applies a lifecycle action to the task.
func (s *SendTaskService) Control(ctx context.Context, taskID string, action domain.ControlAction) error {
	if !action.Valid() {
		return domain.NewCampaignErrorWithDetails(domain.ErrCodeInvalidAction, "unknown control action",
			map[string]interface{}{"action": string(action)})
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return domain.NewCampaignError(domain.ErrCodeTaskNotFound, "task not found", err)
	}

	switch action {
	case domain.ControlActionStart:
		return s.startTask(ctx, task)
	case domain.ControlActionPause:
		return s.pauseTask(ctx, task)
	case domain.ControlActionResume:
		return s.resumeTask(ctx, task)
	case domain.ControlActionStop:
		return s.stopTask(ctx, task)
	}
	return nil
}

func (s *SendTaskService) startTask(ctx context.Context, task *domain.SendTask) error {
	s.mu.Lock()
	plan, ok := s.plans[task.ID]
	s.mu.Unlock()

	if !ok {
		return domain.NewCampaignError(domain.ErrCodeCalculationRequired,
			"task must be calculated before starting", nil)
	}
	if len(plan.StatusMatrixSeed) == 0 {
		return domain.NewCampaignError(domain.ErrCodeMissingStatusMatrix,
			"calculation result has no status matrix", nil)
	}

	if err := s.scheduler.StartTask(task, plan); err != nil {
		if updateErr := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusFailed, nil, nil); updateErr != nil {
			s.logger.WithField("task_id", task.ID).Error(fmt.Sprintf("Failed to record failed start: %v", updateErr))
		}
		return domain.NewCampaignError(domain.ErrCodeSchedulerStartFailed, "scheduler refused the task", err)
	}

	now := time.Now().UTC()
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusRunning, &now, nil); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to persist task start", err)
	}
	return nil
}

func (s *SendTaskService) pauseTask(ctx context.Context, task *domain.SendTask) error {
	if err := s.scheduler.PauseTask(task.ID); err != nil {
		return domain.NewCampaignError(domain.ErrCodeTaskNotFound, "task has no running schedule", err)
	}
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusPaused, task.StartTime, nil); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to persist task pause", err)
	}
	return nil
}

func (s *SendTaskService) resumeTask(ctx context.Context, task *domain.SendTask) error {
	// Resume only has meaning while the scheduler holds a runtime for the
	// task. After a process restart there is nothing to re-arm, so the
	// record keeps its status and the caller is told to start over.
	if _, err := s.scheduler.GetTaskStatus(task.ID); err != nil {
		return domain.NewCampaignError(domain.ErrCodeCalculationRequired,
			"task has no schedule to resume; recalculate and start it", err)
	}
	if err := s.scheduler.ResumeTask(task.ID); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to resume task", err)
	}
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusRunning, task.StartTime, nil); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to persist task resume", err)
	}
	return nil
}

func (s *SendTaskService) stopTask(ctx context.Context, task *domain.SendTask) error {
	if err := s.scheduler.StopTask(task.ID); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to stop task", err)
	}

	s.mu.Lock()
	delete(s.plans, task.ID)
	s.mu.Unlock()

	// A stopped task returns to the initialized state and needs a fresh
	// calculation before it can start again.
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusInitialized, nil, nil); err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to persist task stop", err)
	}
	return nil
}

// Status assembles the full status view. When the scheduler reports the task
// completed but the record still says running, the completion is persisted on
// the way out.
func (s *SendTaskService) Status(ctx context.Context, taskID string) (*TaskStatusReport, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeTaskNotFound, "task not found", err)
	}

	senders, err := s.senderRepo.GetByIDs(ctx, task.SenderIDs)
	if err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeInternal, "failed to resolve senders", err)
	}

	report := &TaskStatusReport{Task: task, Senders: senders}

	snapshot, err := s.scheduler.GetTaskStatus(taskID)
	if err == nil {
		report.Runtime = snapshot
		report.StatusMatrix, report.MatrixStats = s.scheduler.GetStatusMatrix(taskID)

		if snapshot.Status == domain.TaskStatusCompleted && task.Status == domain.TaskStatusRunning {
			if updateErr := s.taskRepo.UpdateStatus(ctx, taskID, domain.TaskStatusCompleted, task.StartTime, snapshot.CompletedAt); updateErr != nil {
				s.logger.WithField("task_id", taskID).Error(fmt.Sprintf("Failed to persist completion: %v", updateErr))
			} else {
				task.Status = domain.TaskStatusCompleted
				task.EndTime = snapshot.CompletedAt
			}
		}
	}

	return report, nil
}

// Reset wipes all runtime state and cached plans, and rolls every running or
// paused task record back to initialized.
func (s *SendTaskService) Reset(ctx context.Context) error {
	s.scheduler.Reset()

	s.mu.Lock()
	s.plans = make(map[string]*domain.Plan)
	s.mu.Unlock()

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return domain.NewCampaignError(domain.ErrCodeInternal, "failed to list tasks", err)
	}
	for _, task := range tasks {
		if task.Status != domain.TaskStatusRunning && task.Status != domain.TaskStatusPaused {
			continue
		}
		if err := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusInitialized, nil, nil); err != nil {
			return domain.NewCampaignError(domain.ErrCodeInternal, "failed to reset task", err)
		}
	}

	s.logger.Warn("All campaign runtime state reset")
	return nil
}

// RecoverTasks reconciles persisted state after a process restart: tasks
// recorded as running are rolled to paused, since their in-memory runtime is
// gone and a fresh calculation plus start is needed to continue.
func (s *SendTaskService) RecoverTasks(ctx context.Context) error {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	for _, task := range tasks {
		if task.Status != domain.TaskStatusRunning {
			continue
		}
		if err := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusPaused, task.StartTime, nil); err != nil {
			return fmt.Errorf("roll task %s to paused: %w", task.ID, err)
		}
		s.logger.WithField("task_id", task.ID).Warn("Task was running at shutdown, rolled to paused")
	}

	return nil
}

// resolveSenders loads and vets the task's senders: every id must exist and
// every sender must be enabled.
func (s *SendTaskService) resolveSenders(ctx context.Context, task *domain.SendTask) ([]*domain.Sender, error) {
	senders, err := s.senderRepo.GetByIDs(ctx, task.SenderIDs)
	if err != nil {
		return nil, domain.NewCampaignError(domain.ErrCodeInternal, "failed to resolve senders", err)
	}

	if len(senders) != len(task.SenderIDs) {
		found := make(map[string]bool, len(senders))
		for _, sender := range senders {
			found[sender.ID] = true
		}
		var missing []string
		for _, id := range task.SenderIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, domain.NewCampaignErrorWithDetails(domain.ErrCodeInvalidSendEmails,
			"one or more senders do not exist",
			map[string]interface{}{"missing_sender_ids": missing})
	}

	var disabled []string
	for _, sender := range senders {
		if !sender.Enabled {
			disabled = append(disabled, sender.ID)
		}
	}
	if len(disabled) > 0 {
		return nil, domain.NewCampaignErrorWithDetails(domain.ErrCodeDisabledSendEmails,
			"one or more senders are disabled",
			map[string]interface{}{"disabled_sender_ids": disabled})
	}

	return senders, nil
}
