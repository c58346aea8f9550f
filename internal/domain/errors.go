package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure condition surfaced to API callers.
type ErrorCode string

const (
	// Task control path
	ErrCodeTaskNotFound         ErrorCode = "TASK_NOT_FOUND"
	ErrCodeCalculationRequired  ErrorCode = "CALCULATION_REQUIRED"
	ErrCodeMissingStatusMatrix  ErrorCode = "MISSING_STATUS_MATRIX"
	ErrCodeSchedulerStartFailed ErrorCode = "SCHEDULER_START_FAILED"
	ErrCodeDataIntegrity        ErrorCode = "DATA_INTEGRITY_ERROR"
	ErrCodeInvalidAction        ErrorCode = "INVALID_ACTION"

	// Calculation path
	ErrCodeInvalidSendEmails  ErrorCode = "INVALID_SEND_EMAILS"
	ErrCodeDisabledSendEmails ErrorCode = "DISABLED_SEND_EMAILS"
	ErrCodeNoReceiveEmails    ErrorCode = "NO_RECEIVE_EMAILS"

	// Generic
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// CampaignError is a coded error carried from the core to the HTTP envelope.
type CampaignError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Err     error
}

// Error implements the error interface
func (e *CampaignError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CampaignError) Unwrap() error {
	return e.Err
}

// NewCampaignError creates a coded error.
func NewCampaignError(code ErrorCode, message string, err error) *CampaignError {
	return &CampaignError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewCampaignErrorWithDetails creates a coded error carrying extra context
// for the HTTP envelope's details field.
func NewCampaignErrorWithDetails(code ErrorCode, message string, details map[string]interface{}) *CampaignError {
	return &CampaignError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// CodeOf extracts the error code from err, or ErrCodeInternal when err is
// not a CampaignError.
func CodeOf(err error) ErrorCode {
	var ce *CampaignError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternal
}

// Sentinel errors returned by repositories for missing rows.
var (
	ErrSenderNotFound    = errors.New("sender not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrTaskNotFound      = errors.New("task not found")
)
