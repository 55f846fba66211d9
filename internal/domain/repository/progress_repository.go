package repository

import (
	"context"
	"time"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
)

// ProgressRepository persists completion records.
type ProgressRepository interface {
	// Create inserts p unless a record for (ActivityID, FinishDate) exists, in which
	// case it returns ErrDuplicate. ErrMissingParent when the activity is gone.
	Create(ctx context.Context, p *entity.Progress) error
	ExistsForDate(ctx context.Context, activityID string, day time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Progress, error)
	ListByActivity(ctx context.Context, activityID string) ([]entity.Progress, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Progress, error)
	// ListByUserBetween returns records with from <= finish_date <= to, newest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.Progress, error)
	LatestByActivity(ctx context.Context, activityID string) (*entity.Progress, error)
	Delete(ctx context.Context, id string) error
	CountByUserAndStatus(ctx context.Context, userID string) (finished int64, started int64, err error)
}
