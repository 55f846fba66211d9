package templates

import (
	"strings"
	"time"
)

type Option func(*EmailData)

func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) { d.ExpiresAtText = t.UTC().Format("02 January 2006, 15:04 MST") }
}

// ResetLink appends the token to base as a query parameter.
func ResetLink(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + token
}

func NewBaseEmailData(appName, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
		AppName:        appName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(appName, name, email string) map[string]any {
	return ToMap(NewBaseEmailData(appName, Welcome, name, email))
}

func NewPasswordResetData(appName, name, email, resetURL string, expiresAt time.Time) map[string]any {
	return ToMap(NewBaseEmailData(appName, PasswordReset, name, email,
		WithResetURL(resetURL), WithExpiresAt(expiresAt)))
}

func NewPasswordChangedData(appName, name, email string, at time.Time) map[string]any {
	return ToMap(NewBaseEmailData(appName, PasswordChanged, name, email, WithTime(at)))
}
