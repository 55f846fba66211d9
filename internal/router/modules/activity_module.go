package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/surershelf/task-manager-api/internal/interface/http"
)

// ActivityModule: every route is scoped by the owning user id.
type ActivityModule struct {
	Handler *handlers.ActivityHandler
}

func NewActivityModule(h *handlers.ActivityHandler) *ActivityModule {
	return &ActivityModule{Handler: h}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	a := rg.Group("/activities")
	a.POST("/user/:user_id", m.Handler.Create)
	a.GET("/user/:user_id", m.Handler.List)
	a.GET("/user/:user_id/search", m.Handler.Search)
	a.GET("/user/:user_id/frequency/:frequency", m.Handler.ListByFrequency)
	a.GET("/:activity_id/user/:user_id", m.Handler.Get)
	a.PUT("/:activity_id/user/:user_id", m.Handler.Update)
	a.DELETE("/:activity_id/user/:user_id", m.Handler.Delete)
}
