package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mailcadence/mailcadence/internal/domain"
)

// errorBody is the error half of the response envelope.
type errorBody struct {
	Code    domain.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

// writeJSON writes a success envelope with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// WriteJSONError writes an error envelope carrying the campaign error code.
// Errors without a code are reported as INTERNAL_ERROR.
func WriteJSONError(w http.ResponseWriter, err error) {
	body := &errorBody{Code: domain.ErrCodeInternal, Message: "internal error"}

	var ce *domain.CampaignError
	if errors.As(err, &ce) {
		body.Code = ce.Code
		body.Message = ce.Message
		body.Details = ce.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForCode(body.Code))
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: body})
}

// writeBadRequest writes a VALIDATION_ERROR envelope for malformed input
// caught before the service layer.
func writeBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorBody{Code: domain.ErrCodeValidation, Message: message},
	})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorBody{Code: domain.ErrCodeValidation, Message: "method not allowed"},
	})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeTaskNotFound:
		return http.StatusNotFound
	case domain.ErrCodeValidation,
		domain.ErrCodeInvalidAction,
		domain.ErrCodeCalculationRequired,
		domain.ErrCodeMissingStatusMatrix,
		domain.ErrCodeInvalidSendEmails,
		domain.ErrCodeDisabledSendEmails,
		domain.ErrCodeNoReceiveEmails:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
