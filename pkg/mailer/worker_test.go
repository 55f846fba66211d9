package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mailtpl "github.com/surershelf/task-manager-api/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	out []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, sent{to, subject, text, html})
	return nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestProcess_RendersPasswordReset(t *testing.T) {
	s := &fakeSender{}
	exp := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)
	job := EmailJob{
		To:       "ana@x.com",
		Template: mailtpl.PasswordReset,
		Data:     mailtpl.NewPasswordResetData("Tasks", "Ana", "ana@x.com", "http://app/reset?token=abc", exp),
	}

	require.NoError(t, Process(context.Background(), s, mustJSON(t, job)))
	require.Len(t, s.out, 1)
	require.Equal(t, "ana@x.com", s.out[0].to)
	require.Equal(t, "Reset your Tasks password", s.out[0].subject)
	require.Contains(t, s.out[0].text, "http://app/reset?token=abc")
	require.Contains(t, s.out[0].text, "02 January 2024, 10:30 UTC")
	require.Contains(t, s.out[0].html, "Hi Ana,")
}

func TestProcess_PlainMessage(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{To: " ana@x.com ", Subject: "hello", Text: "body"}
	require.NoError(t, Process(context.Background(), s, mustJSON(t, job)))
	require.Equal(t, sent{"ana@x.com", "hello", "body", ""}, s.out[0])
}

func TestProcess_PermanentFailures(t *testing.T) {
	s := &fakeSender{}
	ctx := context.Background()

	require.ErrorIs(t, Process(ctx, s, []byte("{not json")), ErrBadJob)
	require.ErrorIs(t, Process(ctx, s, mustJSON(t, EmailJob{Subject: "x", Text: "y"})), ErrBadJob)
	require.ErrorIs(t, Process(ctx, s, mustJSON(t, EmailJob{To: "a@x.com", Template: "login_otp"})), ErrBadJob)
	require.ErrorIs(t, Process(ctx, s, mustJSON(t, EmailJob{To: "a@x.com"})), ErrBadJob)
	require.Empty(t, s.out)
}

func TestProcess_SendErrorIsRetryable(t *testing.T) {
	boom := errors.New("mailgun down")
	s := &fakeSender{err: boom}
	err := Process(context.Background(), s, mustJSON(t, EmailJob{To: "a@x.com", Subject: "x", Text: "y"}))
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrBadJob)
}
