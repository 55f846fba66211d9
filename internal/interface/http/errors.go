package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/application"
	"github.com/surershelf/task-manager-api/pkg/helpers"
	"github.com/surershelf/task-manager-api/pkg/response"
	"github.com/surershelf/task-manager-api/pkg/validation"
)

// writeError is the only place service errors become HTTP responses.
// Not-found and unauthorized bodies never depend on the cause; unauthorized
// bodies carry no per-request fields at all.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var fe *application.FieldError
	switch {
	case errors.As(err, &fe):
		response.Error(c, http.StatusBadRequest, "validation failed", response.ErrorBody{
			Reason:  fe.Error(),
			Details: map[string]string{fe.Field: fe.Reason},
		})
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "validation failed", response.ErrorBody{Reason: application.Reason(err)})
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Fixed(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, application.ErrConflict):
		response.Error(c, http.StatusConflict, "conflict", response.ErrorBody{Reason: application.Reason(err)})
	default:
		if logger != nil {
			helpers.LogError(logger, "request failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"route":      c.FullPath(),
			})
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// bindJSON reports binding and validation failures as 400 with per-field details.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
			Reason:  "invalid payload",
			Details: validation.ToDetails(err),
		})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", response.ErrorBody{
			Reason:  "invalid query",
			Details: validation.ToDetails(err),
		})
		return false
	}
	return true
}

// pathID returns the named path parameter when it is a UUID.
// Anything else cannot exist, so it is answered with notFound.
func pathID(c *gin.Context, logger *logrus.Logger, name string, notFound error) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		writeError(c, logger, notFound)
		return "", false
	}
	return id, true
}

// parseDatePtr turns an optional YYYY-MM-DD string, already validated by binding, into a date.
func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := helpers.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
