package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResetToken_RoundTrip(t *testing.T) {
	m := NewResetTokenManager("s3cret", 30*time.Minute)
	tok, exp, err := m.Generate("u-1", "ana@x.com")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	c, err := m.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u-1", c.UserID)
	require.Equal(t, "ana@x.com", c.Email)
	require.NotEmpty(t, c.ID)

	other, _, err := m.Generate("u-1", "ana@x.com")
	require.NoError(t, err)
	c2, err := m.Parse(other)
	require.NoError(t, err)
	require.NotEqual(t, c.ID, c2.ID)
}

func TestResetToken_Rejects(t *testing.T) {
	m := NewResetTokenManager("s3cret", time.Minute)
	tok, _, err := m.Generate("u-1", "ana@x.com")
	require.NoError(t, err)

	_, err = NewResetTokenManager("other", time.Minute).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = m.Parse("garbage")
	require.ErrorIs(t, err, ErrInvalidResetToken)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidResetToken)
}
