package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesOwnLocation(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC on the 2nd is still the 1st in Sao Paulo
	instant := time.Date(2024, 1, 2, 1, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), DateOf(instant))
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), DateOf(instant.In(sp)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-01-02 ")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)
	require.Equal(t, "2024-01-02", FormatDate(d))

	_, err = ParseDate("02/01/2024")
	require.Error(t, err)
	_, err = ParseDate("2024-02-30")
	require.Error(t, err)
}

func TestFormatDatePtr(t *testing.T) {
	require.Nil(t, FormatDatePtr(nil))
	d := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "1990-05-01", *FormatDatePtr(&d))
}
