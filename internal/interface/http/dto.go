package handlers

import (
	"time"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	BirthDate *string   `json:"birth_date"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		BirthDate: helpers.FormatDatePtr(u.BirthDate),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type userSummaryResponse struct {
	userResponse
	TotalActivities  int `json:"total_activities"`
	ActiveActivities int `json:"active_activities"`
}

type activityResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Frequency   string    `json:"frequency"`
	StartDate   string    `json:"start_date"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toActivityResponse(a *entity.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Description: a.Description,
		Frequency:   a.Frequency.String(),
		StartDate:   helpers.FormatDate(a.StartDate),
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toActivityList(list []entity.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(list))
	for i := range list {
		out = append(out, toActivityResponse(&list[i]))
	}
	return out
}

type progressResponse struct {
	ID            string    `json:"id"`
	ActivityID    string    `json:"activity_id"`
	ActivityTitle string    `json:"activity_title"`
	FinishDate    string    `json:"finish_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProgressResponse(p *entity.Progress) progressResponse {
	return progressResponse{
		ID:            p.ID,
		ActivityID:    p.ActivityID,
		ActivityTitle: p.ActivityTitle,
		FinishDate:    helpers.FormatDate(p.FinishDate),
		Status:        p.Status.String(),
		CreatedAt:     p.CreatedAt,
	}
}

func toProgressList(list []entity.Progress) []progressResponse {
	out := make([]progressResponse, 0, len(list))
	for i := range list {
		out = append(out, toProgressResponse(&list[i]))
	}
	return out
}
