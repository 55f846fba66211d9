package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	repo "github.com/surershelf/task-manager-api/internal/domain/repository"
	"github.com/surershelf/task-manager-api/internal/observability"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

const (
	DefaultRecentDays = 30
	maxRecentDays     = 3650
)

type ProgressService struct {
	Repo       repo.ProgressRepository
	Activities repo.ActivityRepository
	Stats      *StatsService
	Clock      Clock
	Location   *time.Location
	Logger     *logrus.Logger
}

func NewProgressService(progress repo.ProgressRepository, activities repo.ActivityRepository, stats *StatsService, clock Clock, loc *time.Location, logger *logrus.Logger) *ProgressService {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{Repo: progress, Activities: activities, Stats: stats, Clock: clock, Location: loc, Logger: logger}
}

// Today is the current calendar day in the service's location.
func (s *ProgressService) Today() time.Time {
	return today(s.Clock, s.Location)
}

// RecordCompletion writes a FINISHED record for finishDate, or today when nil.
// At most one record exists per activity and day; the storage constraint decides races.
func (s *ProgressService) RecordCompletion(ctx context.Context, activityID string, finishDate *time.Time) (*entity.Progress, error) {
	a, err := s.Activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	day := s.Today()
	if finishDate != nil {
		day = helpers.DateOf(*finishDate)
	}

	exists, err := s.Repo.ExistsForDate(ctx, a.ID, day)
	if err != nil {
		return nil, err
	}
	if exists {
		observability.RecordDuplicateCompletion()
		return nil, ErrAlreadyCompleted
	}

	p := &entity.Progress{
		ID:            uuid.NewString(),
		ActivityID:    a.ID,
		ActivityTitle: a.Title,
		FinishDate:    day,
		Status:        entity.StatusFinished,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			observability.RecordDuplicateCompletion()
			return nil, ErrAlreadyCompleted
		case errors.Is(err, repo.ErrMissingParent):
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	observability.RecordCompletion(p.CreatedAt)
	s.invalidate(ctx, a.UserID)
	return p, nil
}

func (s *ProgressService) ListForActivity(ctx context.Context, activityID string) ([]entity.Progress, error) {
	return s.Repo.ListByActivity(ctx, activityID)
}

func (s *ProgressService) ListForUser(ctx context.Context, userID string) ([]entity.Progress, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *ProgressService) ListForUserToday(ctx context.Context, userID string) ([]entity.Progress, error) {
	d := s.Today()
	return s.Repo.ListByUserBetween(ctx, userID, d, d)
}

// ListForUserRecent covers the last days calendar days, today included.
func (s *ProgressService) ListForUserRecent(ctx context.Context, userID string, days int) ([]entity.Progress, error) {
	if days < 1 || days > maxRecentDays {
		return nil, invalidField("days", "must be between 1 and 3650")
	}
	to := s.Today()
	from := to.AddDate(0, 0, -(days - 1))
	return s.Repo.ListByUserBetween(ctx, userID, from, to)
}

func (s *ProgressService) ListForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.Progress, error) {
	from, to = helpers.DateOf(from), helpers.DateOf(to)
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	return s.Repo.ListByUserBetween(ctx, userID, from, to)
}

func (s *ProgressService) LatestForActivity(ctx context.Context, activityID string) (*entity.Progress, error) {
	p, err := s.Repo.LatestByActivity(ctx, activityID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes one progress record.
func (s *ProgressService) Delete(ctx context.Context, progressID string) error {
	p, err := s.Repo.GetByID(ctx, progressID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}
	if err := s.Repo.Delete(ctx, progressID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}
	if a, err := s.Activities.GetByID(ctx, p.ActivityID); err == nil {
		s.invalidate(ctx, a.UserID)
	}
	return nil
}

func (s *ProgressService) invalidate(ctx context.Context, userID string) {
	if s.Stats != nil {
		s.Stats.Invalidate(ctx, userID)
	}
}
