package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/pkg/logger"
)

//go:generate mockgen -destination=./mocks/mock_scheduler.go -package=mocks github.com/Mailcadence/mailcadence/internal/service/scheduler SchedulerInterface

// SchedulerInterface is the runtime control surface for send tasks.
type SchedulerInterface interface {
	// StartTask wipes any prior runtime for the task, materialises the
	// plan into jobs and arms their timers.
	StartTask(task *domain.SendTask, plan *domain.Plan) error

	// PauseTask cancels pending timers but preserves job statuses. Jobs
	// already processing run to their terminal outcome.
	PauseTask(taskID string) error

	// ResumeTask re-arms timers for still-pending jobs; overdue jobs fire
	// immediately. Resuming a task with no runtime is a no-op.
	ResumeTask(taskID string) error

	// StopTask cancels all timers and deletes the task's jobs and runtime.
	// Stopping an unknown task is a no-op.
	StopTask(taskID string) error

	// GetTaskStatus returns a read-only snapshot of the task runtime.
	GetTaskStatus(taskID string) (*TaskSnapshot, error)

	// GetStatusMatrix projects the task's jobs into the sparse
	// recipient -> sender -> status view.
	GetStatusMatrix(taskID string) (map[string]map[string]domain.JobStatus, MatrixStats)

	// Reset clears every task, job and timer owned by the scheduler.
	Reset()
}

// TaskSnapshot is a point-in-time view of one task's runtime state.
type TaskSnapshot struct {
	TaskID          string            `json:"task_id"`
	Status          domain.TaskStatus `json:"status"`
	IsRunning       bool              `json:"is_running"`
	TotalEmails     int               `json:"total_emails"`
	TotalSent       int               `json:"total_sent"`
	TotalFailed     int               `json:"total_failed"`
	TotalPending    int               `json:"total_pending"`
	TotalProcessing int               `json:"total_processing"`
	SuccessRate     float64           `json:"success_rate"`
	ProgressPercent float64           `json:"progress_percent"`
	ArmedTimers     int               `json:"armed_timers"`
	StartedAt       time.Time         `json:"started_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

// taskRuntime is the in-memory state of one started task. All fields are
// guarded by the scheduler mutex.
type taskRuntime struct {
	taskID    string
	subject   string
	body      string
	isRunning bool
	status    domain.TaskStatus

	totalEmails     int
	totalSent       int
	totalFailed     int
	totalPending    int
	totalProcessing int

	startedAt   time.Time
	completedAt *time.Time
	lastLogTime time.Time

	timers          map[string]TimerHandle // job id -> armed timer
	completionTimer TimerHandle
}

// Scheduler owns per-task runtime: it materialises plans into jobs, arms
// timers against the timer source, dispatches sends and maintains the
// aggregate counters. A single mutex guards all shared state; it is never
// held across a send-backend call.
type Scheduler struct {
	mu         sync.Mutex
	tasks      map[string]*taskRuntime
	jobs       *JobStore
	backend    domain.SendBackend
	timeSource TimerSource
	logger     logger.Logger
	config     *Config
}

// NewScheduler creates a scheduler dispatching through the given backend.
func NewScheduler(backend domain.SendBackend, timeSource TimerSource, logger logger.Logger, config *Config) *Scheduler {
	if config == nil {
		config = DefaultConfig()
	}
	if timeSource == nil {
		timeSource = NewRealTimerSource()
	}

	return &Scheduler{
		tasks:      make(map[string]*taskRuntime),
		jobs:       NewJobStore(),
		backend:    backend,
		timeSource: timeSource,
		logger:     logger,
		config:     config,
	}
}

// StartTask validates the plan, wipes any prior runtime for the task,
// materialises jobs and arms their timers. The integrity precondition is
// strict: a plan with misaligned recipient/time lists is rejected, never
// silently repaired here.
func (s *Scheduler) StartTask(task *domain.SendTask, plan *domain.Plan) error {
	if err := validatePlanIntegrity(plan); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupTaskLocked(task.ID)

	now := s.timeSource.Now()
	rt := &taskRuntime{
		taskID:      task.ID,
		subject:     task.Subject,
		body:        task.Body,
		isRunning:   true,
		status:      domain.TaskStatusRunning,
		startedAt:   now,
		lastLogTime: now,
		timers:      make(map[string]TimerHandle),
	}
	s.tasks[task.ID] = rt

	s.materializeJobsLocked(rt, plan, now)

	for _, job := range s.jobs.ListByTaskAndStatus(task.ID, domain.JobStatusPending) {
		s.armJobLocked(rt, job.ID, job.ScheduledAt)
	}
	s.scheduleCompletionTickLocked(rt)

	s.logger.WithFields(map[string]interface{}{
		"task_id":      task.ID,
		"total_emails": rt.totalEmails,
		"days":         plan.CalculatedDays,
	}).Info("Task started")

	return nil
}

// PauseTask stops dispatching without touching job statuses.
func (s *Scheduler) PauseTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.tasks[taskID]
	if !ok {
		return fmt.Errorf("pause: %w", domain.ErrTaskNotFound)
	}
	if !rt.isRunning {
		return nil
	}

	rt.isRunning = false
	rt.status = domain.TaskStatusPaused
	s.cancelTimersLocked(rt)

	s.logger.WithFields(map[string]interface{}{
		"task_id": taskID,
		"pending": rt.totalPending,
	}).Info("Task paused")

	return nil
}

// ResumeTask re-arms timers for pending jobs. Overdue jobs dispatch
// immediately. A task with no runtime is left untouched.
func (s *Scheduler) ResumeTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.tasks[taskID]
	if !ok {
		return nil
	}
	if rt.isRunning || rt.status == domain.TaskStatusCompleted {
		return nil
	}

	rt.isRunning = true
	rt.status = domain.TaskStatusRunning

	pending := s.jobs.ListByTaskAndStatus(taskID, domain.JobStatusPending)
	for _, job := range pending {
		s.armJobLocked(rt, job.ID, job.ScheduledAt)
	}
	s.scheduleCompletionTickLocked(rt)

	s.logger.WithFields(map[string]interface{}{
		"task_id": taskID,
		"rearmed": len(pending),
	}).Info("Task resumed")

	// Everything may have finished while paused.
	s.checkCompletionLocked(rt)

	return nil
}

// StopTask wipes the task's runtime entirely.
func (s *Scheduler) StopTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return nil
	}

	s.cleanupTaskLocked(taskID)
	s.logger.WithField("task_id", taskID).Info("Task stopped")

	return nil
}

// GetTaskStatus returns a snapshot of the task runtime.
func (s *Scheduler) GetTaskStatus(taskID string) (*TaskSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return s.snapshotLocked(rt), nil
}

// GetStatusMatrix projects the task's jobs into the nested status view.
func (s *Scheduler) GetStatusMatrix(taskID string) (map[string]map[string]domain.JobStatus, MatrixStats) {
	return BuildStatusMatrix(s.jobs, taskID)
}

// Reset clears all tasks, jobs and timers process-wide.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for taskID := range s.tasks {
		s.cleanupTaskLocked(taskID)
	}
	s.jobs.Clear()

	s.logger.Warn("Scheduler reset: all runtime state cleared")
}

// validatePlanIntegrity enforces the start precondition: every sender-day
// must have exactly one planned time per recipient.
func validatePlanIntegrity(plan *domain.Plan) error {
	if plan == nil {
		return domain.NewCampaignError(domain.ErrCodeDataIntegrity, "plan is missing", nil)
	}
	for _, day := range plan.DailySchedule {
		for _, sd := range day.Senders {
			if len(sd.RecipientIDs) != len(sd.PlannedTimes) {
				return domain.NewCampaignErrorWithDetails(
					domain.ErrCodeDataIntegrity,
					"planned time count does not match recipient count",
					map[string]interface{}{
						"day":        day.Day,
						"sender_id":  sd.SenderID,
						"recipients": len(sd.RecipientIDs),
						"times":      len(sd.PlannedTimes),
					},
				)
			}
		}
	}
	return nil
}

// materializeJobsLocked expands the plan into pending jobs anchored at the
// start of the current calendar day.
func (s *Scheduler) materializeJobsLocked(rt *taskRuntime, plan *domain.Plan, now time.Time) {
	dayZero := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, day := range plan.DailySchedule {
		dayStart := dayZero.Add(time.Duration(day.Day-1) * 24 * time.Hour)
		for _, sd := range day.Senders {
			for i, recipientID := range sd.RecipientIDs {
				scheduledAt := dayStart
				if hh, mm, err := parseClockStamp(sd.PlannedTimes[i]); err == nil {
					scheduledAt = dayStart.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
				} else {
					s.logger.WithFields(map[string]interface{}{
						"task_id":   rt.taskID,
						"sender_id": sd.SenderID,
						"day":       day.Day,
						"stamp":     sd.PlannedTimes[i],
					}).Error("Unparseable planned time, falling back to day start")
				}

				job := &domain.Job{
					ID:          jobID(rt.taskID, sd.SenderID, recipientID, day.Day, i),
					TaskID:      rt.taskID,
					SenderID:    sd.SenderID,
					RecipientID: recipientID,
					Day:         day.Day,
					ScheduledAt: scheduledAt,
					Status:      domain.JobStatusPending,
				}
				s.jobs.Add(job)
				rt.totalEmails++
				rt.totalPending++
			}
		}
	}
}

// armJobLocked schedules the dispatch timer for a pending job. Overdue jobs
// get a zero delay and fire as soon as the timer source allows.
func (s *Scheduler) armJobLocked(rt *taskRuntime, jobID string, scheduledAt time.Time) {
	delay := scheduledAt.Sub(s.timeSource.Now())
	if delay < 0 {
		delay = 0
	}

	taskID := rt.taskID
	rt.timers[jobID] = s.timeSource.AfterFunc(delay, func() {
		s.dispatchJob(taskID, jobID)
	})
}

// dispatchJob is the timer callback: claim the job, release the lock, send,
// then re-acquire and apply the terminal transition.
func (s *Scheduler) dispatchJob(taskID, jobID string) {
	s.mu.Lock()

	rt, ok := s.tasks[taskID]
	if !ok || !rt.isRunning {
		// Paused or stopped between arming and firing.
		s.mu.Unlock()
		return
	}
	delete(rt.timers, jobID)

	claimed := false
	job, found := s.jobs.Update(jobID, func(j *domain.Job) {
		if j.Status == domain.JobStatusPending {
			j.Status = domain.JobStatusProcessing
			j.Attempts++
			claimed = true
		}
	})
	if !found || !claimed {
		s.mu.Unlock()
		return
	}

	rt.totalPending--
	rt.totalProcessing++
	subject, body := rt.subject, rt.body
	s.mu.Unlock()

	receipt, sendErr := s.backend.Send(context.Background(), job.SenderID, job.RecipientID, subject, body)

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.tasks[taskID]; !ok || cur != rt {
		// Stopped or restarted while the send was in flight. A restart
		// installs a fresh runtime with fresh jobs under the same ids, so
		// the result must only be applied to the runtime that claimed it.
		return
	}

	if sendErr != nil {
		s.jobs.Update(jobID, func(j *domain.Job) {
			j.Status = domain.JobStatusFailed
			j.ErrorMessage = sendErr.Error()
		})
		rt.totalFailed++

		s.logger.WithFields(map[string]interface{}{
			"task_id":      taskID,
			"job_id":       jobID,
			"sender_id":    job.SenderID,
			"recipient_id": job.RecipientID,
			"error":        sendErr.Error(),
		}).Warn("Job failed")
	} else {
		sentAt := s.timeSource.Now()
		if receipt != nil {
			sentAt = receipt.SentAt
		}
		s.jobs.Update(jobID, func(j *domain.Job) {
			j.Status = domain.JobStatusSent
			j.SentAt = &sentAt
		})
		rt.totalSent++
	}
	rt.totalProcessing--

	// Follow-up side effects are suppressed when the task was paused while
	// the send was in flight.
	if rt.isRunning {
		s.checkCompletionLocked(rt)
	}
}

// scheduleCompletionTickLocked arms the low-frequency sweep that catches
// completion (and logs progress) independently of dispatches.
func (s *Scheduler) scheduleCompletionTickLocked(rt *taskRuntime) {
	taskID := rt.taskID
	rt.completionTimer = s.timeSource.AfterFunc(s.config.CompletionCheckInterval, func() {
		s.completionSweep(taskID)
	})
}

func (s *Scheduler) completionSweep(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.tasks[taskID]
	if !ok || !rt.isRunning {
		return
	}

	s.checkCompletionLocked(rt)
	if !rt.isRunning {
		return
	}

	if s.timeSource.Since(rt.lastLogTime) >= s.config.ProgressLogInterval {
		s.logger.WithFields(map[string]interface{}{
			"task_id":    taskID,
			"sent":       rt.totalSent,
			"failed":     rt.totalFailed,
			"pending":    rt.totalPending,
			"processing": rt.totalProcessing,
			"progress":   progressPercent(rt),
		}).Info("Task progress")
		rt.lastLogTime = s.timeSource.Now()
	}

	s.scheduleCompletionTickLocked(rt)
}

// checkCompletionLocked transitions a running task with no remaining work to
// Completed and releases its timers.
func (s *Scheduler) checkCompletionLocked(rt *taskRuntime) {
	if !rt.isRunning || rt.totalPending > 0 || rt.totalProcessing > 0 {
		return
	}

	now := s.timeSource.Now()
	rt.isRunning = false
	rt.status = domain.TaskStatusCompleted
	rt.completedAt = &now
	s.cancelTimersLocked(rt)

	s.logger.WithFields(map[string]interface{}{
		"task_id": rt.taskID,
		"sent":    rt.totalSent,
		"failed":  rt.totalFailed,
	}).Info("Task completed")
}

// cancelTimersLocked stops every armed timer the runtime owns.
func (s *Scheduler) cancelTimersLocked(rt *taskRuntime) {
	for jobID, handle := range rt.timers {
		handle.Stop()
		delete(rt.timers, jobID)
	}
	if rt.completionTimer != nil {
		rt.completionTimer.Stop()
		rt.completionTimer = nil
	}
}

// cleanupTaskLocked removes the task's timers, jobs and runtime.
func (s *Scheduler) cleanupTaskLocked(taskID string) {
	rt, ok := s.tasks[taskID]
	if ok {
		s.cancelTimersLocked(rt)
	}
	s.jobs.DeleteByTask(taskID)
	delete(s.tasks, taskID)
}

func (s *Scheduler) snapshotLocked(rt *taskRuntime) *TaskSnapshot {
	snapshot := &TaskSnapshot{
		TaskID:          rt.taskID,
		Status:          rt.status,
		IsRunning:       rt.isRunning,
		TotalEmails:     rt.totalEmails,
		TotalSent:       rt.totalSent,
		TotalFailed:     rt.totalFailed,
		TotalPending:    rt.totalPending,
		TotalProcessing: rt.totalProcessing,
		ProgressPercent: progressPercent(rt),
		ArmedTimers:     len(rt.timers),
		StartedAt:       rt.startedAt,
		CompletedAt:     rt.completedAt,
	}
	if done := rt.totalSent + rt.totalFailed; done > 0 {
		snapshot.SuccessRate = float64(rt.totalSent) / float64(done)
	}
	return snapshot
}

func progressPercent(rt *taskRuntime) float64 {
	if rt.totalEmails <= 0 {
		return 100.0
	}
	progress := float64(rt.totalSent+rt.totalFailed) / float64(rt.totalEmails) * 100.0
	if progress > 100.0 {
		progress = 100.0
	}
	return progress
}

// parseClockStamp parses an "HH:MM" minute stamp.
func parseClockStamp(stamp string) (int, int, error) {
	t, err := time.Parse("15:04", stamp)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// jobID builds the deterministic job identifier.
func jobID(taskID, senderID, recipientID string, day, index int) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", taskID, senderID, recipientID, day, index)
}
