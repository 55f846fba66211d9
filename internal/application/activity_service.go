package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	repo "github.com/surershelf/task-manager-api/internal/domain/repository"
	"github.com/surershelf/task-manager-api/internal/observability"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 255
	defaultSearchSize = 20
)

type ActivityService struct {
	Repo   repo.ActivityRepository
	Users  repo.UserRepository
	Index  ActivityIndex
	Logger *logrus.Logger
}

func NewActivityService(activities repo.ActivityRepository, users repo.UserRepository, index ActivityIndex, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Repo: activities, Users: users, Index: index, Logger: logger}
}

type CreateActivityInput struct {
	Title       string
	Description string
	Frequency   string
	StartDate   *time.Time
}

// Create rejects a title that overlaps, ignoring case, with one of the user's active titles.
func (s *ActivityService) Create(ctx context.Context, userID string, in CreateActivityInput) (*entity.Activity, error) {
	title, err := checkTitle(in.Title)
	if err != nil {
		return nil, err
	}
	desc, err := checkDescription(in.Description)
	if err != nil {
		return nil, err
	}
	freq, err := entity.ParseFrequency(in.Frequency)
	if err != nil {
		return nil, ErrInvalidFrequency
	}
	if in.StartDate == nil {
		return nil, invalidField("start_date", "is required")
	}

	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	similar, err := s.Repo.FindSimilarActiveTitles(ctx, userID, title)
	if err != nil {
		return nil, err
	}
	if len(similar) > 0 {
		return nil, ErrDuplicateTitle
	}

	a := &entity.Activity{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: desc,
		Frequency:   freq,
		StartDate:   helpers.DateOf(*in.StartDate),
		Active:      true,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrMissingParent) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.index(ctx, a)
	return a, nil
}

// UpdateActivityInput fields left nil are not changed.
type UpdateActivityInput struct {
	Title       *string
	Description *string
	Frequency   *string
	StartDate   *time.Time
}

func (s *ActivityService) Update(ctx context.Context, activityID, userID string, in UpdateActivityInput) (*entity.Activity, error) {
	a, err := s.Get(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if a.Title, err = checkTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if a.Description, err = checkDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if in.Frequency != nil {
		f, err := entity.ParseFrequency(*in.Frequency)
		if err != nil {
			return nil, ErrInvalidFrequency
		}
		a.Frequency = f
	}
	if in.StartDate != nil {
		a.StartDate = helpers.DateOf(*in.StartDate)
	}

	if err := s.Repo.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	s.index(ctx, a)
	return a, nil
}

// SoftDelete deactivates the activity; its progress history stays.
func (s *ActivityService) SoftDelete(ctx context.Context, activityID, userID string) error {
	if err := s.Repo.SetActive(ctx, activityID, userID, false); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	if s.Index != nil {
		if a, err := s.Repo.GetByIDAndUser(ctx, activityID, userID); err == nil {
			s.index(ctx, a)
		}
	}
	return nil
}

// Get is ownership-scoped: another user's activity is reported as not found.
func (s *ActivityService) Get(ctx context.Context, activityID, userID string) (*entity.Activity, error) {
	a, err := s.Repo.GetByIDAndUser(ctx, activityID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *ActivityService) List(ctx context.Context, userID string) ([]entity.Activity, error) {
	return s.Repo.ListActiveByUser(ctx, userID)
}

func (s *ActivityService) ListByFrequency(ctx context.Context, userID, frequency string) ([]entity.Activity, error) {
	f, err := entity.ParseFrequency(frequency)
	if err != nil {
		return nil, ErrInvalidFrequency
	}
	return s.Repo.ListActiveByUserAndFrequency(ctx, userID, f)
}

// Search queries the full-text index, falling back to title matching when
// the index is not configured or unavailable.
func (s *ActivityService) Search(ctx context.Context, userID, query string) ([]entity.Activity, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidField("q", "is required")
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, userID, query, defaultSearchSize)
		if err == nil {
			return s.loadOwned(ctx, userID, ids)
		}
		observability.RecordIntegrationError("elasticsearch")
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("activity search failed, using database")
		}
	}
	return s.Repo.FindSimilarActiveTitles(ctx, userID, query)
}

func (s *ActivityService) loadOwned(ctx context.Context, userID string, ids []string) ([]entity.Activity, error) {
	out := make([]entity.Activity, 0, len(ids))
	for _, id := range ids {
		a, err := s.Repo.GetByIDAndUser(ctx, id, userID)
		if errors.Is(err, repo.ErrNotFound) {
			continue // index lags behind deletes
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *ActivityService) index(ctx context.Context, a *entity.Activity) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, a); err != nil {
		observability.RecordIntegrationError("elasticsearch")
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("activity_id", a.ID).Warn("es index failed")
		}
	}
}

func checkTitle(raw string) (string, error) {
	t := strings.TrimSpace(raw)
	switch {
	case t == "":
		return "", invalidField("title", "is required")
	case utf8.RuneCountInString(t) > maxTitleLen:
		return "", invalidField("title", "must be at most 100 characters long")
	}
	return t, nil
}

func checkDescription(raw string) (string, error) {
	d := strings.TrimSpace(raw)
	switch {
	case d == "":
		return "", invalidField("description", "is required")
	case utf8.RuneCountInString(d) > maxDescriptionLen:
		return "", invalidField("description", "must be at most 255 characters long")
	}
	return d, nil
}
