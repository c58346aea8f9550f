package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/internal/service"
	"github.com/Mailcadence/mailcadence/internal/service/mocks"
	"github.com/Mailcadence/mailcadence/pkg/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*mocks.MockSendTaskServiceInterface, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := mocks.NewMockSendTaskServiceInterface(ctrl)
	mux := http.NewServeMux()
	NewSendTaskHandler(svc, logger.NewTestLogger(t)).RegisterRoutes(mux)
	return svc, mux
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func postJSON(mux *http.ServeMux, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSendTaskHandler_Create(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().CreateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *domain.SendTask) error {
			assert.Equal(t, "spring launch", task.Name)
			assert.Equal(t, []string{"s-1"}, task.SenderIDs)
			task.ID = "task-1"
			return nil
		})

	rec := postJSON(mux, "/api/tasks.create", CreateTaskRequest{
		Name:                     "spring launch",
		EmailsPerHour:            2,
		EmailsPerRecipientPerDay: 1,
		WorkingHours:             24,
		SenderIDs:                []string{"s-1"},
		Subject:                  "hello",
		Body:                     "<p>hi</p>",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "task-1", body["data"].(map[string]interface{})["id"])
}

func TestSendTaskHandler_Create_InvalidBody(t *testing.T) {
	_, mux := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks.create", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(domain.ErrCodeValidation), body["error"].(map[string]interface{})["code"])
}

func TestSendTaskHandler_Create_MethodNotAllowed(t *testing.T) {
	_, mux := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks.create", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSendTaskHandler_Calculate(t *testing.T) {
	svc, mux := setupHandler(t)

	plan := &domain.Plan{TotalEmails: 6, CalculatedDays: 2}
	svc.EXPECT().Calculate(gomock.Any(), "task-1").Return(plan, nil)

	rec := postJSON(mux, "/api/tasks.calculate", TaskIDRequest{ID: "task-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(6), data["total_emails"])
	assert.Equal(t, float64(2), data["calculated_days"])
}

func TestSendTaskHandler_Calculate_NoRecipients(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().Calculate(gomock.Any(), "task-1").
		Return(nil, domain.NewCampaignError(domain.ErrCodeNoReceiveEmails, "no active recipients to send to", nil))

	rec := postJSON(mux, "/api/tasks.calculate", TaskIDRequest{ID: "task-1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, string(domain.ErrCodeNoReceiveEmails), errBody["code"])
	assert.Equal(t, "no active recipients to send to", errBody["message"])
}

func TestSendTaskHandler_Control(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().Control(gomock.Any(), "task-1", domain.ControlActionStart).Return(nil)

	rec := postJSON(mux, "/api/tasks.control", ControlTaskRequest{ID: "task-1", Action: domain.ControlActionStart})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "start", body["data"].(map[string]interface{})["action"])
}

func TestSendTaskHandler_Control_CalculationRequired(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().Control(gomock.Any(), "task-1", domain.ControlActionStart).
		Return(domain.NewCampaignError(domain.ErrCodeCalculationRequired, "task must be calculated before starting", nil))

	rec := postJSON(mux, "/api/tasks.control", ControlTaskRequest{ID: "task-1", Action: domain.ControlActionStart})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeEnvelope(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, string(domain.ErrCodeCalculationRequired), errBody["code"])
}

func TestSendTaskHandler_Control_MissingID(t *testing.T) {
	_, mux := setupHandler(t)

	rec := postJSON(mux, "/api/tasks.control", ControlTaskRequest{Action: domain.ControlActionStart})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendTaskHandler_Status(t *testing.T) {
	svc, mux := setupHandler(t)

	report := &service.TaskStatusReport{
		Task: &domain.SendTask{ID: "task-1", Status: domain.TaskStatusRunning},
		StatusMatrix: map[string]map[string]domain.JobStatus{
			"r-1": {"s-1": domain.JobStatusSent},
		},
	}
	svc.EXPECT().Status(gomock.Any(), "task-1").Return(report, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks.status?id=task-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	matrix := data["status_matrix"].(map[string]interface{})
	assert.Equal(t, "sent", matrix["r-1"].(map[string]interface{})["s-1"])
}

func TestSendTaskHandler_Status_NotFound(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().Status(gomock.Any(), "missing").
		Return(nil, domain.NewCampaignError(domain.ErrCodeTaskNotFound, "task not found", domain.ErrTaskNotFound))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks.status?id=missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendTaskHandler_Status_MissingID(t *testing.T) {
	_, mux := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks.status", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendTaskHandler_Reset(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().Reset(gomock.Any()).Return(nil)

	rec := postJSON(mux, "/api/tasks.reset", struct{}{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeEnvelope(t, rec)["success"])
}

func TestSendTaskHandler_List(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().ListTasks(gomock.Any()).Return([]*domain.SendTask{
		{ID: "task-1"}, {ID: "task-2"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks.list", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestSendTaskHandler_Get(t *testing.T) {
	svc, mux := setupHandler(t)

	svc.EXPECT().GetTask(gomock.Any(), "task-1").Return(&domain.SendTask{ID: "task-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks.get?id=task-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
