package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/application"
	"github.com/surershelf/task-manager-api/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type updateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,optemail,max=100"`
	BirthDate *string `json:"birth_date" binding:"omitempty,isodate"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (h *UserHandler) userID(c *gin.Context) (string, bool) {
	return pathID(c, h.Logger, "user_id", application.ErrUserNotFound)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	u, err := h.Users.GetProfile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "profile", nil)
}

func (h *UserHandler) GetProfileWithActivities(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	sum, err := h.Users.GetProfileWithActivities(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userSummaryResponse{
		userResponse:     toUserResponse(sum.User),
		TotalActivities:  sum.TotalActivities,
		ActiveActivities: sum.ActiveActivities,
	}, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: parseDatePtr(req.BirthDate),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "profile updated", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Users.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password changed", nil)
}

// UploadAvatar POST /api/user/:user_id/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		writeError(c, h.Logger, &application.FieldError{Field: "avatar", Reason: "is required"})
		return
	}
	if fh.Size > application.MaxAvatarBytes {
		writeError(c, h.Logger, application.ErrAvatarTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := strings.TrimSpace(fh.Header.Get("Content-Type"))
	url, err := h.Users.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), uid); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted", nil)
}

// CheckEmail GET /api/user/check-email/:email
func (h *UserHandler) CheckEmail(c *gin.Context) {
	exists, err := h.Users.EmailExists(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exists": exists}, "email checked", nil)
}

func (h *UserHandler) FindByEmail(c *gin.Context) {
	u, err := h.Users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user", nil)
}
