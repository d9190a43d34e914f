package mcp

import (
	"errors"
	"fmt"

	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
)

// errInvalidParams indicates tool arguments that could not be decoded.
var errInvalidParams = errors.New("invalid params")

// APIError represents an MCP tool error payload.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to
// INTERNAL without leaking their text.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, routine.ErrBabyNotFound),
		errors.Is(err, baby.ErrBabyNotFound),
		errors.Is(err, event.ErrBabyNotFound),
		errors.Is(err, report.ErrBabyNotFound):
		return &APIError{Code: "BABY_NOT_FOUND", Message: "baby not found", RecoveryHint: "Call list_babies for valid IDs"}
	case errors.Is(err, routine.ErrNoSleepData):
		return &APIError{Code: "NO_SLEEP_DATA", Message: "no sleep events recorded", RecoveryHint: "Record a sleep_start or sleep_end event first"}
	case errors.Is(err, report.ErrNoEvents):
		return &APIError{Code: "NO_EVENTS", Message: "no events recorded for the day", RecoveryHint: "Pick a day with recorded events"}
	case errors.Is(err, report.ErrReportNotFound):
		return &APIError{Code: "REPORT_NOT_FOUND", Message: "report not found", RecoveryHint: "Call daily_report with generate=true"}
	case errors.Is(err, event.ErrInvalidInput),
		errors.Is(err, routine.ErrInvalidInput),
		errors.Is(err, errInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, auth.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "unauthorized"}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}
