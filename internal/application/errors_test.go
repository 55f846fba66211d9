package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReason(t *testing.T) {
	require.Equal(t, "user not found", Reason(ErrUserNotFound))
	require.Equal(t, "invalid credentials", Reason(ErrInvalidCredentials))
	require.Equal(t, "title: is required", Reason(invalidField("title", "is required")))
	require.Equal(t, "boom", Reason(errors.New("boom")))
}

func TestFieldErrorIsValidation(t *testing.T) {
	err := fmt.Errorf("create: %w", invalidField("q", "is required"))
	require.ErrorIs(t, err, ErrValidation)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "q", fe.Field)
}
