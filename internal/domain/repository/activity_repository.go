package repository

import (
	"context"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
)

// ActivityRepository persists activities. Every read that takes a userID is ownership-scoped.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Activity, error)
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	ListActiveByUser(ctx context.Context, userID string) ([]entity.Activity, error)
	ListActiveByUserAndFrequency(ctx context.Context, userID string, f entity.Frequency) ([]entity.Activity, error)
	// FindSimilarActiveTitles returns active activities of userID whose title contains
	// title, or is contained by it, ignoring case.
	FindSimilarActiveTitles(ctx context.Context, userID, title string) ([]entity.Activity, error)
	Update(ctx context.Context, a *entity.Activity) error
	SetActive(ctx context.Context, id, userID string, active bool) error
	CountByUser(ctx context.Context, userID string) (total int, active int, err error)
}
