package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/nogmois/nana-back/internal/repository"
)

const (
	codeInvalidInput       = "invalid_input"
	codeUnauthorized       = "unauthorized"
	codeNotFound           = "not_found"
	codeConflict           = "conflict"
	codePreconditionFailed = "precondition_failed"
	codeInternal           = "internal"
)

// errBadRequest marks malformed query parameters or bodies.
var errBadRequest = errors.New("bad request")

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, baby.ErrInvalidInput),
		errors.Is(err, event.ErrInvalidInput),
		errors.Is(err, routine.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, codeUnauthorized
	case errors.Is(err, baby.ErrBabyNotFound),
		errors.Is(err, event.ErrBabyNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, routine.ErrBabyNotFound),
		errors.Is(err, report.ErrBabyNotFound),
		errors.Is(err, report.ErrReportNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, codeConflict
	case errors.Is(err, routine.ErrNoSleepData),
		errors.Is(err, report.ErrNoEvents):
		return http.StatusPreconditionFailed, codePreconditionFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeError maps err onto the JSON error envelope. Internal errors are
// logged and replaced by a generic message.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: apiError{Message: msg, Code: code}})
}
