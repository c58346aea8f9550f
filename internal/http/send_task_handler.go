package http

import (
	"encoding/json"
	"net/http"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/internal/service"
	"github.com/Mailcadence/mailcadence/pkg/logger"
)

// SendTaskHandler exposes the campaign control plane over RPC-style routes.
type SendTaskHandler struct {
	service service.SendTaskServiceInterface
	logger  logger.Logger
}

// NewSendTaskHandler creates a new send task handler
func NewSendTaskHandler(service service.SendTaskServiceInterface, logger logger.Logger) *SendTaskHandler {
	return &SendTaskHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers RPC-style endpoints with dot notation.
func (h *SendTaskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/tasks.create", h.handleCreate)
	mux.HandleFunc("/api/tasks.list", h.handleList)
	mux.HandleFunc("/api/tasks.get", h.handleGet)
	mux.HandleFunc("/api/tasks.calculate", h.handleCalculate)
	mux.HandleFunc("/api/tasks.control", h.handleControl)
	mux.HandleFunc("/api/tasks.status", h.handleStatus)
	mux.HandleFunc("/api/tasks.reset", h.handleReset)
}

// CreateTaskRequest is the payload for tasks.create.
type CreateTaskRequest struct {
	Name                     string   `json:"name"`
	EmailsPerHour            float64  `json:"emails_per_hour"`
	EmailsPerRecipientPerDay int      `json:"emails_per_recipient_per_day"`
	WorkingHours             int      `json:"working_hours"`
	SenderIDs                []string `json:"sender_ids"`
	Subject                  string   `json:"subject"`
	Body                     string   `json:"body"`
	CreatedBy                string   `json:"created_by"`
}

func (r *CreateTaskRequest) toTask() *domain.SendTask {
	return &domain.SendTask{
		Name:                     r.Name,
		EmailsPerHour:            r.EmailsPerHour,
		EmailsPerRecipientPerDay: r.EmailsPerRecipientPerDay,
		WorkingHours:             r.WorkingHours,
		SenderIDs:                r.SenderIDs,
		Subject:                  r.Subject,
		Body:                     r.Body,
		CreatedBy:                r.CreatedBy,
	}
}

// TaskIDRequest is the payload for endpoints addressing one task.
type TaskIDRequest struct {
	ID string `json:"id"`
}

// ControlTaskRequest is the payload for tasks.control.
type ControlTaskRequest struct {
	ID     string               `json:"id"`
	Action domain.ControlAction `json:"action"`
}

func (h *SendTaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		writeBadRequest(w, "invalid request body")
		return
	}

	task := req.toTask()
	if err := h.service.CreateTask(r.Context(), task); err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *SendTaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *SendTaskHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeBadRequest(w, "missing parameter: id")
		return
	}

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *SendTaskHandler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req TaskIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.ID == "" {
		writeBadRequest(w, "missing parameter: id")
		return
	}

	plan, err := h.service.Calculate(r.Context(), req.ID)
	if err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *SendTaskHandler) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req ControlTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.ID == "" {
		writeBadRequest(w, "missing parameter: id")
		return
	}

	if err := h.service.Control(r.Context(), req.ID, req.Action); err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     req.ID,
		"action": string(req.Action),
	})
}

func (h *SendTaskHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeBadRequest(w, "missing parameter: id")
		return
	}

	report, err := h.service.Status(r.Context(), id)
	if err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *SendTaskHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	if err := h.service.Reset(r.Context()); err != nil {
		WriteJSONError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
