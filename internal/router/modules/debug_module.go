package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DebugModule exposes expvar and Prometheus metrics, rate limited per IP.
type DebugModule struct {
	Limits *Limits
}

func NewDebugModule(limits *Limits) *DebugModule { return &DebugModule{Limits: limits} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := m.Limits.PerMinute(120)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
}
