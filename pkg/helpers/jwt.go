package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const resetPurpose = "password_reset"

var ErrInvalidResetToken = errors.New("invalid reset token")

// ResetTokenManager issues and verifies password reset tokens.
type ResetTokenManager struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewResetTokenManager(secret string, ttl time.Duration) *ResetTokenManager {
	return &ResetTokenManager{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

type ResetClaims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Generate returns a signed token for userID and its expiry.
// Every token carries a unique ID so it can be consumed once.
func (m *ResetTokenManager) Generate(userID, email string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.TTL)
	claims := &ResetClaims{
		UserID:  userID,
		Email:   email,
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *ResetTokenManager) Parse(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidResetToken
	}
	if claims.Purpose != resetPurpose || claims.UserID == "" || claims.ID == "" {
		return nil, ErrInvalidResetToken
	}
	return claims, nil
}
