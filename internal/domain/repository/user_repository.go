package repository

import (
	"context"
	"errors"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
)

// Storage-level outcomes the services translate into domain errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("unique constraint violated")
	ErrMissingParent = errors.New("referenced row does not exist")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills ID-independent system fields (CreatedAt, UpdatedAt).
	// Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByEmailExcept reports whether another user than id owns email.
	ExistsByEmailExcept(ctx context.Context, email, id string) (bool, error)
	// Update writes name, email and birth date, and refreshes u.AvatarURL from storage.
	// Returns ErrDuplicate on email clash.
	Update(ctx context.Context, u *entity.User) error
	UpdateAvatar(ctx context.Context, id, url string) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
