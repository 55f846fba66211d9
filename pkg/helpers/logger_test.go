package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogHelpers(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogInfo(logger, "user deleted", logrus.Fields{"user_id": "u-1"})
	LogWarn(logger, "cache down", errors.New("dial tcp"), nil)
	LogError(logger, "request failed", errors.New("boom"), logrus.Fields{"route": "/x"})

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	require.Equal(t, logrus.InfoLevel, entries[0].Level)
	require.Equal(t, "u-1", entries[0].Data["user_id"])
	require.Equal(t, logrus.WarnLevel, entries[1].Level)
	require.Equal(t, "dial tcp", entries[1].Data[logrus.ErrorKey])
	require.Equal(t, logrus.ErrorLevel, entries[2].Level)
	require.Equal(t, "/x", entries[2].Data["route"])
}
