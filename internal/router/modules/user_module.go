package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/surershelf/task-manager-api/internal/interface/http"
)

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	u := rg.Group("/user")
	u.GET("/check-email/:email", m.Handler.CheckEmail)
	u.GET("/email/:email", m.Handler.FindByEmail)
	u.GET("/:user_id/profile", m.Handler.GetProfile)
	u.GET("/:user_id/profile-with-activities", m.Handler.GetProfileWithActivities)
	u.PUT("/:user_id/profile", m.Handler.UpdateProfile)
	u.PUT("/:user_id/password", m.Handler.ChangePassword)
	u.POST("/:user_id/avatar", m.Handler.UploadAvatar)
	u.DELETE("/:user_id", m.Handler.Delete)
}
