package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	userID := uuid.New()

	tok, err := svc.GenerateToken(userID, "founder@example.com", "STARTUP")
	require.NoError(t, err)

	c, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, "STARTUP", c.Role)
	assert.Equal(t, userID.String(), c.Subject)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	issued := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateToken(uuid.New(), "", "INVESTOR")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("one", time.Hour).GenerateToken(uuid.New(), "", "INVESTOR")
	require.NoError(t, err)

	_, err = NewHMACService("two", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_SubjectOnlyToken(t *testing.T) {
	userID := uuid.New()
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":  userID.String(),
		"role": "INVESTOR",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tok, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	c, err := NewHMACService("secret", time.Hour).ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID)
}

func TestHMACService_MissingRole(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	tok, err := svc.GenerateToken(uuid.New(), "", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
