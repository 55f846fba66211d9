package gcs

import (
	"context"
	"errors"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// AvatarStore uploads user avatars to one bucket.
type AvatarStore struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket, now: time.Now}
}

// Upload streams r to avatars/<user>/<unix-nanos><ext>. Read errors from r,
// such as the caller's size limit, are returned unchanged.
func (s *AvatarStore) Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", errors.New("gcs not configured")
	}
	objectPath := helpers.AvatarObjectPath(userID, filename, s.now())
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}
