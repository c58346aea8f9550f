package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mailcadence/mailcadence/internal/domain"
	domainmocks "github.com/Mailcadence/mailcadence/internal/domain/mocks"
	"github.com/Mailcadence/mailcadence/internal/service/planner"
	"github.com/Mailcadence/mailcadence/internal/service/scheduler"
	schedulermocks "github.com/Mailcadence/mailcadence/internal/service/scheduler/mocks"
	"github.com/Mailcadence/mailcadence/pkg/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service       *SendTaskService
	taskRepo      *domainmocks.MockTaskRepository
	senderRepo    *domainmocks.MockSenderRepository
	recipientRepo *domainmocks.MockRecipientRepository
	scheduler     *schedulermocks.MockSchedulerInterface
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &serviceFixture{
		taskRepo:      domainmocks.NewMockTaskRepository(ctrl),
		senderRepo:    domainmocks.NewMockSenderRepository(ctrl),
		recipientRepo: domainmocks.NewMockRecipientRepository(ctrl),
		scheduler:     schedulermocks.NewMockSchedulerInterface(ctrl),
	}
	log := logger.NewTestLogger(t)
	f.service = NewSendTaskService(f.taskRepo, f.senderRepo, f.recipientRepo,
		planner.NewPlanner(log), f.scheduler, log)
	return f
}

func fixtureTask() *domain.SendTask {
	return &domain.SendTask{
		ID:                       "task-1",
		Name:                     "spring launch",
		Status:                   domain.TaskStatusInitialized,
		EmailsPerHour:            2,
		EmailsPerRecipientPerDay: 2,
		WorkingHours:             24,
		SenderIDs:                []string{"s-1", "s-2"},
		Subject:                  "hello",
		Body:                     "<p>hi</p>",
	}
}

func fixtureSenders(enabled bool) []*domain.Sender {
	return []*domain.Sender{
		{ID: "s-1", EmailAccount: "one@acme.test", Enabled: enabled},
		{ID: "s-2", EmailAccount: "two@acme.test", Enabled: enabled},
	}
}

func fixtureRecipients(n int) []*domain.Recipient {
	recipients := make([]*domain.Recipient, n)
	for i := range recipients {
		recipients[i] = &domain.Recipient{ID: "r-" + string(rune('a'+i)), Email: "to@acme.test"}
	}
	return recipients
}

// calculateTask drives a successful calculation so the plan cache is primed.
func calculateTask(t *testing.T, f *serviceFixture, task *domain.SendTask) *domain.Plan {
	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(fixtureSenders(true), nil)
	f.recipientRepo.EXPECT().ListActive(gomock.Any()).Return(fixtureRecipients(3), nil)
	f.taskRepo.EXPECT().Update(gomock.Any(), task).Return(nil)

	plan, err := f.service.Calculate(context.Background(), task.ID)
	require.NoError(t, err)
	return plan
}

func TestSendTaskService_CreateTask(t *testing.T) {
	f := newServiceFixture(t)

	task := fixtureTask()
	task.ID = ""
	f.taskRepo.EXPECT().Create(gomock.Any(), task).Return(nil)

	require.NoError(t, f.service.CreateTask(context.Background(), task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TaskStatusInitialized, task.Status)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestSendTaskService_CreateTask_Invalid(t *testing.T) {
	f := newServiceFixture(t)

	task := fixtureTask()
	task.SenderIDs = nil

	err := f.service.CreateTask(context.Background(), task)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestSendTaskService_Calculate(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	plan := calculateTask(t, f, task)

	// 2 senders x 3 recipients, one group of two.
	assert.Equal(t, 6, plan.TotalEmails)
	assert.Equal(t, 1, plan.CalculatedDays)
	assert.Equal(t, 6, plan.SeededPairs())
	require.NotNil(t, task.DurationDays)
	assert.Equal(t, plan.CalculatedDays, *task.DurationDays)
}

func TestSendTaskService_Calculate_TaskNotFound(t *testing.T) {
	f := newServiceFixture(t)
	f.taskRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, domain.ErrTaskNotFound)

	_, err := f.service.Calculate(context.Background(), "missing")
	assert.Equal(t, domain.ErrCodeTaskNotFound, domain.CodeOf(err))
}

func TestSendTaskService_Calculate_UnknownSender(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(fixtureSenders(true)[:1], nil)

	_, err := f.service.Calculate(context.Background(), task.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidSendEmails, domain.CodeOf(err))

	var ce *domain.CampaignError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"s-2"}, ce.Details["missing_sender_ids"])
}

func TestSendTaskService_Calculate_DisabledSender(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	senders := fixtureSenders(true)
	senders[1].Enabled = false
	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(senders, nil)

	_, err := f.service.Calculate(context.Background(), task.ID)
	assert.Equal(t, domain.ErrCodeDisabledSendEmails, domain.CodeOf(err))
}

func TestSendTaskService_Calculate_NoRecipients(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(fixtureSenders(true), nil)
	f.recipientRepo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)

	_, err := f.service.Calculate(context.Background(), task.ID)
	assert.Equal(t, domain.ErrCodeNoReceiveEmails, domain.CodeOf(err))
}

func TestSendTaskService_Control_InvalidAction(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.Control(context.Background(), "task-1", domain.ControlAction("restart"))
	assert.Equal(t, domain.ErrCodeInvalidAction, domain.CodeOf(err))
}

func TestSendTaskService_Control_StartWithoutCalculation(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)

	err := f.service.Control(context.Background(), task.ID, domain.ControlActionStart)
	assert.Equal(t, domain.ErrCodeCalculationRequired, domain.CodeOf(err))
}

func TestSendTaskService_Control_StartWithEmptyMatrix(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	plan := calculateTask(t, f, task)
	plan.StatusMatrixSeed = nil

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)

	err := f.service.Control(context.Background(), task.ID, domain.ControlActionStart)
	assert.Equal(t, domain.ErrCodeMissingStatusMatrix, domain.CodeOf(err))
}

func TestSendTaskService_Control_Start(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	plan := calculateTask(t, f, task)

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().StartTask(task, plan).Return(nil)
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), task.ID, domain.TaskStatusRunning, gomock.Not(gomock.Nil()), nil).Return(nil)

	require.NoError(t, f.service.Control(context.Background(), task.ID, domain.ControlActionStart))
}

func TestSendTaskService_Control_StartSchedulerFailure(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	plan := calculateTask(t, f, task)

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().StartTask(task, plan).Return(errors.New("integrity check failed"))
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), task.ID, domain.TaskStatusFailed, nil, nil).Return(nil)

	err := f.service.Control(context.Background(), task.ID, domain.ControlActionStart)
	assert.Equal(t, domain.ErrCodeSchedulerStartFailed, domain.CodeOf(err))
}

func TestSendTaskService_Control_PauseAndResume(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	started := time.Now().UTC()
	task.StartTime = &started

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().PauseTask(task.ID).Return(nil)
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), task.ID, domain.TaskStatusPaused, &started, nil).Return(nil)
	require.NoError(t, f.service.Control(context.Background(), task.ID, domain.ControlActionPause))

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().GetTaskStatus(task.ID).Return(&scheduler.TaskSnapshot{TaskID: task.ID, Status: domain.TaskStatusPaused}, nil)
	f.scheduler.EXPECT().ResumeTask(task.ID).Return(nil)
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), task.ID, domain.TaskStatusRunning, &started, nil).Return(nil)
	require.NoError(t, f.service.Control(context.Background(), task.ID, domain.ControlActionResume))
}

func TestSendTaskService_Control_ResumeWithoutRuntime(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	task.Status = domain.TaskStatusPaused

	// A paused record left over from before a restart has no runtime behind
	// it; resume must not flip the record to running.
	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().GetTaskStatus(task.ID).Return(nil, domain.ErrTaskNotFound)

	err := f.service.Control(context.Background(), task.ID, domain.ControlActionResume)
	assert.Equal(t, domain.ErrCodeCalculationRequired, domain.CodeOf(err))
}

func TestSendTaskService_Control_PauseWithoutRuntime(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().PauseTask(task.ID).Return(domain.ErrTaskNotFound)

	err := f.service.Control(context.Background(), task.ID, domain.ControlActionPause)
	assert.Equal(t, domain.ErrCodeTaskNotFound, domain.CodeOf(err))
}

func TestSendTaskService_Control_StopInvalidatesPlan(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	calculateTask(t, f, task)

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.scheduler.EXPECT().StopTask(task.ID).Return(nil)
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), task.ID, domain.TaskStatusInitialized, nil, nil).Return(nil)
	require.NoError(t, f.service.Control(context.Background(), task.ID, domain.ControlActionStop))

	// The cached plan is gone: a second start demands recalculation.
	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	err := f.service.Control(context.Background(), task.ID, domain.ControlActionStart)
	assert.Equal(t, domain.ErrCodeCalculationRequired, domain.CodeOf(err))
}

func TestSendTaskService_Status(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	task.Status = domain.TaskStatusRunning

	snapshot := &scheduler.TaskSnapshot{
		TaskID:       task.ID,
		Status:       domain.TaskStatusRunning,
		TotalEmails:  6,
		TotalSent:    2,
		TotalPending: 4,
	}
	matrix := map[string]map[string]domain.JobStatus{
		"r-a": {"s-1": domain.JobStatusSent},
	}

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(fixtureSenders(true), nil)
	f.scheduler.EXPECT().GetTaskStatus(task.ID).Return(snapshot, nil)
	f.scheduler.EXPECT().GetStatusMatrix(task.ID).Return(matrix, scheduler.MatrixStats{Total: 6, Sent: 2, Pending: 4})

	report, err := f.service.Status(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, report.Task)
	assert.Len(t, report.Senders, 2)
	assert.Equal(t, snapshot, report.Runtime)
	assert.Equal(t, 6, report.MatrixStats.Total)
}

func TestSendTaskService_Status_PersistsCompletion(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()
	task.Status = domain.TaskStatusRunning
	started := time.Now().UTC()
	task.StartTime = &started

	completedAt := started.Add(time.Hour)
	snapshot := &scheduler.TaskSnapshot{
		TaskID:      task.ID,
		Status:      domain.TaskStatusCompleted,
		CompletedAt: &completedAt,
	}

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(fixtureSenders(true), nil)
	f.scheduler.EXPECT().GetTaskStatus(task.ID).Return(snapshot, nil)
	f.scheduler.EXPECT().GetStatusMatrix(task.ID).Return(nil, scheduler.MatrixStats{})
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), task.ID, domain.TaskStatusCompleted, &started, &completedAt).Return(nil)

	report, err := f.service.Status(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, report.Task.Status)
	assert.Equal(t, &completedAt, report.Task.EndTime)
}

func TestSendTaskService_Status_NoRuntime(t *testing.T) {
	f := newServiceFixture(t)
	task := fixtureTask()

	f.taskRepo.EXPECT().GetByID(gomock.Any(), task.ID).Return(task, nil)
	f.senderRepo.EXPECT().GetByIDs(gomock.Any(), task.SenderIDs).Return(fixtureSenders(true), nil)
	f.scheduler.EXPECT().GetTaskStatus(task.ID).Return(nil, domain.ErrTaskNotFound)

	report, err := f.service.Status(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Nil(t, report.Runtime)
	assert.Nil(t, report.StatusMatrix)
}

func TestSendTaskService_Reset(t *testing.T) {
	f := newServiceFixture(t)

	running := fixtureTask()
	running.Status = domain.TaskStatusRunning
	done := fixtureTask()
	done.ID = "task-2"
	done.Status = domain.TaskStatusCompleted

	f.scheduler.EXPECT().Reset()
	f.taskRepo.EXPECT().List(gomock.Any()).Return([]*domain.SendTask{running, done}, nil)
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), running.ID, domain.TaskStatusInitialized, nil, nil).Return(nil)

	require.NoError(t, f.service.Reset(context.Background()))
}

func TestSendTaskService_RecoverTasks(t *testing.T) {
	f := newServiceFixture(t)

	running := fixtureTask()
	running.Status = domain.TaskStatusRunning
	started := time.Now().UTC()
	running.StartTime = &started
	idle := fixtureTask()
	idle.ID = "task-2"

	f.taskRepo.EXPECT().List(gomock.Any()).Return([]*domain.SendTask{running, idle}, nil)
	f.taskRepo.EXPECT().UpdateStatus(gomock.Any(), running.ID, domain.TaskStatusPaused, &started, nil).Return(nil)

	require.NoError(t, f.service.RecoverTasks(context.Background()))
}
