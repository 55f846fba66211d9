package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/application"
	"github.com/surershelf/task-manager-api/pkg/response"
)

type ActivityHandler struct {
	Activities *application.ActivityService
	Logger     *logrus.Logger
}

func NewActivityHandler(activities *application.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Activities: activities, Logger: logger}
}

type createActivityRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"required,notblank,max=255"`
	Frequency   string `json:"frequency" binding:"required,frequency"`
	StartDate   string `json:"start_date" binding:"required,isodate"`
}

type updateActivityRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=100"`
	Description *string `json:"description" binding:"omitempty,notblank,max=255"`
	Frequency   *string `json:"frequency" binding:"omitempty,frequency"`
	StartDate   *string `json:"start_date" binding:"omitempty,isodate"`
}

func (h *ActivityHandler) ids(c *gin.Context) (activityID, userID string, ok bool) {
	if userID, ok = pathID(c, h.Logger, "user_id", application.ErrUserNotFound); !ok {
		return "", "", false
	}
	if activityID, ok = pathID(c, h.Logger, "activity_id", application.ErrActivityNotFound); !ok {
		return "", "", false
	}
	return activityID, userID, true
}

// Create POST /api/activities/user/:user_id
func (h *ActivityHandler) Create(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	var req createActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Activities.Create(c.Request.Context(), uid, application.CreateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		StartDate:   parseDatePtr(&req.StartDate),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toActivityResponse(a), "activity created", nil)
}

// List GET /api/activities/user/:user_id returns active activities only.
func (h *ActivityHandler) List(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	list, err := h.Activities.List(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toActivityList(list), "activities", map[string]any{"count": len(list)})
}

func (h *ActivityHandler) ListByFrequency(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	list, err := h.Activities.ListByFrequency(c.Request.Context(), uid, c.Param("frequency"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toActivityList(list), "activities", map[string]any{"count": len(list)})
}

// Search GET /api/activities/user/:user_id/search?q=
func (h *ActivityHandler) Search(c *gin.Context) {
	uid, ok := pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
	if !ok {
		return
	}
	list, err := h.Activities.Search(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toActivityList(list), "activities", map[string]any{"count": len(list)})
}

func (h *ActivityHandler) Get(c *gin.Context) {
	aid, uid, ok := h.ids(c)
	if !ok {
		return
	}
	a, err := h.Activities.Get(c.Request.Context(), aid, uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toActivityResponse(a), "activity", nil)
}

func (h *ActivityHandler) Update(c *gin.Context) {
	aid, uid, ok := h.ids(c)
	if !ok {
		return
	}
	var req updateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Activities.Update(c.Request.Context(), aid, uid, application.UpdateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		StartDate:   parseDatePtr(req.StartDate),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toActivityResponse(a), "activity updated", nil)
}

// Delete deactivates the activity; its progress history is kept.
func (h *ActivityHandler) Delete(c *gin.Context) {
	aid, uid, ok := h.ids(c)
	if !ok {
		return
	}
	if err := h.Activities.SoftDelete(c.Request.Context(), aid, uid); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "activity deleted", nil)
}
