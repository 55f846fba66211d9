package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/application"
	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/pkg/helpers"
	"github.com/surershelf/task-manager-api/pkg/response"
)

type ProgressHandler struct {
	Progress *application.ProgressService
	Stats    *application.StatsService
	Logger   *logrus.Logger
}

func NewProgressHandler(progress *application.ProgressService, stats *application.StatsService, logger *logrus.Logger) *ProgressHandler {
	return &ProgressHandler{Progress: progress, Stats: stats, Logger: logger}
}

type recordProgressRequest struct {
	ActivityID string  `json:"activity_id" binding:"required"`
	FinishDate *string `json:"finish_date" binding:"omitempty,isodate"`
}

type rangeQuery struct {
	From string `form:"from" binding:"required,isodate"`
	To   string `form:"to" binding:"required,isodate"`
}

// Create POST /api/progress marks an activity as completed on finish_date, or today.
func (h *ProgressHandler) Create(c *gin.Context) {
	var req recordProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := uuid.Parse(req.ActivityID); err != nil {
		writeError(c, h.Logger, application.ErrActivityNotFound)
		return
	}
	p, err := h.Progress.RecordCompletion(c.Request.Context(), req.ActivityID, parseDatePtr(req.FinishDate))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toProgressResponse(p), "progress recorded", nil)
}

func (h *ProgressHandler) ListForActivity(c *gin.Context) {
	aid, ok := pathID(c, h.Logger, "activity_id", application.ErrActivityNotFound)
	if !ok {
		return
	}
	list, err := h.Progress.ListForActivity(c.Request.Context(), aid)
	h.writeList(c, list, err)
}

func (h *ProgressHandler) Latest(c *gin.Context) {
	aid, ok := pathID(c, h.Logger, "activity_id", application.ErrActivityNotFound)
	if !ok {
		return
	}
	p, err := h.Progress.LatestForActivity(c.Request.Context(), aid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProgressResponse(p), "progress", nil)
}

func (h *ProgressHandler) ListForUser(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	list, err := h.Progress.ListForUser(c.Request.Context(), uid)
	h.writeList(c, list, err)
}

func (h *ProgressHandler) Today(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	list, err := h.Progress.ListForUserToday(c.Request.Context(), uid)
	h.writeList(c, list, err)
}

// Recent GET /api/progress/user/:user_id/recent?days=30
func (h *ProgressHandler) Recent(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	days := application.DefaultRecentDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, h.Logger, &application.FieldError{Field: "days", Reason: "must be an integer"})
			return
		}
		days = n
	}
	list, err := h.Progress.ListForUserRecent(c.Request.Context(), uid, days)
	h.writeList(c, list, err)
}

// Range GET /api/progress/user/:user_id/range?from=YYYY-MM-DD&to=YYYY-MM-DD, both inclusive.
func (h *ProgressHandler) Range(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	var q rangeQuery
	if !bindQuery(c, &q) {
		return
	}
	from, _ := helpers.ParseDate(q.From)
	to, _ := helpers.ParseDate(q.To)
	list, err := h.Progress.ListForUserBetween(c.Request.Context(), uid, from, to)
	h.writeList(c, list, err)
}

func (h *ProgressHandler) Stats(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	stats, err := h.Stats.CompletionStats(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "completion stats", nil)
}

// Delete DELETE /api/progress/:progress_id removes the record permanently.
func (h *ProgressHandler) Delete(c *gin.Context) {
	pid, ok := pathID(c, h.Logger, "progress_id", application.ErrProgressNotFound)
	if !ok {
		return
	}
	if err := h.Progress.Delete(c.Request.Context(), pid); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "progress deleted", nil)
}

func (h *ProgressHandler) writeList(c *gin.Context, list []entity.Progress, err error) {
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProgressList(list), "progress", map[string]any{"count": len(list)})
}
