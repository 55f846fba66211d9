package application

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrActivityNotFound = fmt.Errorf("%w: activity not found", ErrNotFound)
	ErrProgressNotFound = fmt.Errorf("%w: progress not found", ErrNotFound)

	ErrEmailTaken       = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrEmailConflict    = fmt.Errorf("%w: email already in use by another user", ErrConflict)
	ErrDuplicateTitle   = fmt.Errorf("%w: an active activity with a similar title already exists", ErrConflict)
	ErrAlreadyCompleted = fmt.Errorf("%w: activity already completed on that date", ErrConflict)

	ErrInvalidFrequency  = fmt.Errorf("%w: frequency must be one of DAILY, WEEKLY, MONTHLY", ErrValidation)
	ErrPasswordTooShort  = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	ErrWrongPassword     = fmt.Errorf("%w: current password is incorrect", ErrValidation)
	ErrInvalidDateRange  = fmt.Errorf("%w: from must not be after to", ErrValidation)
	ErrInvalidResetToken = fmt.Errorf("%w: reset token is invalid or expired", ErrValidation)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// MaxAvatarBytes caps one avatar upload.
const MaxAvatarBytes = 5 << 20

// ErrAvatarTooLarge is returned while streaming an upload past MaxAvatarBytes.
var ErrAvatarTooLarge = invalidField("avatar", "must be at most 5 MiB")

// MinPasswordLength applies to registration, password change and reset.
const MinPasswordLength = 6

// FieldError reports a rule violated by one input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

func (e *FieldError) Unwrap() error { return ErrValidation }

func invalidField(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Reason strips the category prefix for client-facing messages.
func Reason(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	for _, cat := range []error{ErrNotFound, ErrValidation, ErrConflict, ErrUnauthorized} {
		if msg, ok := strings.CutPrefix(err.Error(), cat.Error()+": "); ok {
			return msg
		}
	}
	return err.Error()
}
