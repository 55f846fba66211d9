package application

import (
	"context"
	"io"
	"time"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
)

// Integrations the services use on a best-effort basis. A nil port disables the feature.

// EmailQueue accepts e-mail jobs for asynchronous delivery.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// AvatarStore persists uploaded images and returns their public URL.
type AvatarStore interface {
	Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
}

// ActivityIndex is the full-text view of activities.
type ActivityIndex interface {
	Index(ctx context.Context, a *entity.Activity) error
	// Search returns ids of the user's matching activities, best match first.
	Search(ctx context.Context, userID, query string, size int) ([]string, error)
}

// StatsCache holds computed statistics per user, versioned by a generation
// number that every write to the user's progress advances.
type StatsCache interface {
	// Get returns the entry for the current generation, and that generation.
	Get(ctx context.Context, userID string) (s *entity.CompletionStats, gen int64, ok bool, err error)
	// Set stores s under gen. Once gen is superseded the entry is never read again.
	Set(ctx context.Context, userID string, gen int64, s *entity.CompletionStats) error
	// Invalidate starts a new generation.
	Invalidate(ctx context.Context, userID string) error
}

// TokenStore remembers consumed one-time tokens.
type TokenStore interface {
	// Consume returns false when id was already consumed.
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
}
