package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/surershelf/task-manager-api/internal/interface/http"
)

// AuthModule: public registration, login and password reset, each rate limited.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Limits  *Limits
}

func NewAuthModule(h *handlers.AuthHandler, limits *Limits) *AuthModule {
	return &AuthModule{Handler: h, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := m.Limits.cfg
	auth := rg.Group("/auth")
	auth.POST("/register", m.Limits.PerMinute(cfg.RateLimitRegister), m.Handler.Register)
	auth.POST("/login", m.Limits.PerMinute(cfg.RateLimitLogin), m.Handler.Login)
	auth.POST("/forgot-password", m.Limits.PerMinute(cfg.RateLimitReset), m.Handler.ForgotPassword)
	auth.POST("/reset-password", m.Limits.PerMinute(cfg.RateLimitReset), m.Handler.ResetPassword)
}
