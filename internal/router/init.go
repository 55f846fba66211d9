package router

import (
	"github.com/surershelf/task-manager-api/internal/application"
	"github.com/surershelf/task-manager-api/internal/container"
	"github.com/surershelf/task-manager-api/internal/infrastructure/cache"
	"github.com/surershelf/task-manager-api/internal/infrastructure/gcs"
	pginfra "github.com/surershelf/task-manager-api/internal/infrastructure/postgres"
	"github.com/surershelf/task-manager-api/internal/infrastructure/search"
	handlers "github.com/surershelf/task-manager-api/internal/interface/http"
	"github.com/surershelf/task-manager-api/internal/router/modules"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// Services are the application services built from the container.
type Services struct {
	Users      *application.UserService
	Activities *application.ActivityService
	Progress   *application.ProgressService
	Stats      *application.StatsService
}

// BuildServices wires repositories and the optional integrations that are
// present in the container into the application services.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetDB()

	users := pginfra.NewUserRepository(db)
	activities := pginfra.NewActivityRepository(db)
	progress := pginfra.NewProgressRepository(db)

	var statsCache application.StatsCache
	var usedTokens application.TokenStore
	if rdb := container.GetRedis(); rdb != nil {
		statsCache = cache.NewStatsCache(rdb, cfg.StatsCacheTTL)
		usedTokens = cache.NewTokenStore(rdb)
	}
	var index application.ActivityIndex
	if es := container.GetES(); es != nil {
		index = search.NewActivityIndex(es, cfg.ESActivitiesIndex)
	}

	userSvc := application.NewUserService(users, activities, logger)
	userSvc.Tokens = helpers.NewResetTokenManager(cfg.ResetTokenSecret, cfg.ResetTokenTTL)
	userSvc.UsedTokens = usedTokens
	userSvc.AppName = cfg.AppName
	userSvc.ResetURL = cfg.ResetPasswordURL
	userSvc.Clock = container.GetClock()
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		userSvc.Mail = pub
	}
	if client := container.GetGCS(); client != nil && cfg.GCSBucket != "" {
		userSvc.Avatars = gcs.NewAvatarStore(client, cfg.GCSBucket)
	}

	stats := application.NewStatsService(progress, statsCache, logger)
	userSvc.Stats = stats
	return Services{
		Users:      userSvc,
		Activities: application.NewActivityService(activities, users, index, logger),
		Progress:   application.NewProgressService(progress, activities, stats, container.GetClock(), cfg.Location(), logger),
		Stats:      stats,
	}
}

// InitModules builds every feature module and adds it to r.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()

	limits := modules.NewLimits(container.GetRedis(), cfg, logger)

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger), limits),
		modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger)),
		modules.NewActivityModule(handlers.NewActivityHandler(svc.Activities, logger)),
		modules.NewProgressModule(handlers.NewProgressHandler(svc.Progress, svc.Stats, logger)),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limits))
	}
}
