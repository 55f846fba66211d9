package application

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	repo "github.com/surershelf/task-manager-api/internal/domain/repository"
	"github.com/surershelf/task-manager-api/internal/observability"
)

type StatsService struct {
	Repo   repo.ProgressRepository
	Cache  StatsCache
	Logger *logrus.Logger
}

func NewStatsService(progress repo.ProgressRepository, cache StatsCache, logger *logrus.Logger) *StatsService {
	return &StatsService{Repo: progress, Cache: cache, Logger: logger}
}

// CompletionStats counts the user's progress rows by status. The cache is
// advisory: its failures are logged and the database answers.
// The generation is read before the counts, so a result computed across a
// concurrent write is stored under a generation that is already dead.
func (s *StatsService) CompletionStats(ctx context.Context, userID string) (*entity.CompletionStats, error) {
	var gen int64
	cacheable := false
	if s.Cache != nil {
		cached, g, ok, err := s.Cache.Get(ctx, userID)
		if err != nil {
			s.warn(err, userID, "stats cache read failed")
		}
		observability.RecordStatsCache(ok && err == nil)
		if ok && err == nil {
			return cached, nil
		}
		gen, cacheable = g, err == nil
	}

	finished, started, err := s.Repo.CountByUserAndStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &entity.CompletionStats{
		TotalFinished:  finished,
		TotalStarted:   started,
		CompletionRate: CompletionRate(finished, started),
	}

	if cacheable {
		if err := s.Cache.Set(ctx, userID, gen, stats); err != nil {
			s.warn(err, userID, "stats cache write failed")
		}
	}
	return stats, nil
}

// Invalidate retires every cached statistic of userID.
func (s *StatsService) Invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		s.warn(err, userID, "stats cache invalidate failed")
	}
}

// CompletionRate is finished/(finished+started) as a percentage rounded to
// two decimals, and exactly 0 when there are no rows.
func CompletionRate(finished, started int64) float64 {
	total := finished + started
	if total == 0 {
		return 0
	}
	return math.Round(float64(finished)/float64(total)*100*100) / 100
}

func (s *StatsService) warn(err error, userID, msg string) {
	observability.RecordIntegrationError("redis")
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}
