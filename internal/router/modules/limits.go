package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/config"
	"github.com/surershelf/task-manager-api/internal/interface/middleware"
)

// Limits builds per-route rate limiters (requests per minute per client IP).
// Without redis every limiter is a no-op.
type Limits struct {
	rdb    redis.Scripter
	allow  middleware.AllowFunc
	logger *logrus.Logger
	cfg    *config.Config
}

func NewLimits(rdb *redis.Client, cfg *config.Config, logger *logrus.Logger) *Limits {
	l := &Limits{cfg: cfg, logger: logger}
	if rdb != nil {
		l.rdb = rdb
	}
	if cfg.Env == "development" {
		l.allow = middleware.AllowPrivateIP()
	}
	return l
}

func (l *Limits) PerMinute(max int) gin.HandlerFunc {
	return middleware.RateLimit(l.rdb, max, time.Minute, middleware.KeyByIPAndRoute(), l.allow, l.logger)
}
