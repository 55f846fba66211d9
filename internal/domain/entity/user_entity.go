package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in PasswordHash and never leave the service layer.
// Email is kept normalised (trimmed, lower-cased).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	BirthDate    *time.Time
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is a user together with counts over the activities it owns.
type UserSummary struct {
	User             *User
	TotalActivities  int
	ActiveActivities int
}
