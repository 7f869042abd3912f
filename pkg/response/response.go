package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/communehq/commune/internal/domain/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}

// StatusOf maps a domain failure to an HTTP status. The domain only
// classifies probable origin; the concrete status per code lives here.
func StatusOf(err error) int {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case apperr.CodeIllegalAuthenticationToken:
		return http.StatusUnauthorized
	case apperr.CodeNotGroupAdmin, apperr.CodeNotGroupMember, apperr.CodeNotAllowedToModify:
		return http.StatusForbidden
	case apperr.CodeNotFound, apperr.CodeNotFoundOnRepository:
		return http.StatusNotFound
	case apperr.CodeStillBelongsToOneOrMoreGroups, apperr.CodeInsufficientAdmins:
		return http.StatusConflict
	case apperr.CodeWrongInvitationSecret, apperr.CodeEmailVerificationFailed, apperr.CodeUserProfileExpired:
		return http.StatusForbidden
	case apperr.CodeIllegalProperties, apperr.CodeIllegalValue:
		return http.StatusUnprocessableEntity
	}
	if e.ProbablyCausedByClient && !e.ProbablyCausedByServer {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// FromDomainError writes the envelope for a failed domain call.
func FromDomainError(ctx *gin.Context, err error) APIResponse[any] {
	status := StatusOf(err)
	var e *apperr.Error
	if errors.As(err, &e) {
		return Error[any](ctx, status, e.Message, gin.H{"code": e.Code})
	}
	return Error[any](ctx, status, "internal error", nil)
}
