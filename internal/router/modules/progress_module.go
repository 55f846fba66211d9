package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/surershelf/task-manager-api/internal/interface/http"
)

type ProgressModule struct {
	Handler *handlers.ProgressHandler
}

func NewProgressModule(h *handlers.ProgressHandler) *ProgressModule {
	return &ProgressModule{Handler: h}
}

func (m *ProgressModule) Register(rg *gin.RouterGroup) {
	p := rg.Group("/progress")
	p.POST("", m.Handler.Create)
	p.POST("/create", m.Handler.Create) // older clients
	p.GET("/activity/:activity_id", m.Handler.ListForActivity)
	p.GET("/activity/:activity_id/latest", m.Handler.Latest)
	p.GET("/user/:user_id", m.Handler.ListForUser)
	p.GET("/user/:user_id/today", m.Handler.Today)
	p.GET("/user/:user_id/recent", m.Handler.Recent)
	p.GET("/user/:user_id/range", m.Handler.Range)
	p.GET("/user/:user_id/stats", m.Handler.Stats)
	p.DELETE("/:progress_id", m.Handler.Delete)
}
