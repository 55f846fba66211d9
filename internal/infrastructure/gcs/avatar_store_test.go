package gcs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpload_NotConfigured(t *testing.T) {
	_, err := NewAvatarStore(nil, "").Upload(context.Background(), "u1", strings.NewReader("x"), "a.png", "image/png")
	require.Error(t, err)
}
