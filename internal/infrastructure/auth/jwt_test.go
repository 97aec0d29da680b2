package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "jaiguru", time.Hour)

	token, err := svc.GenerateToken("user-1", "aswin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "aswin", claims.Username)
	assert.Equal(t, "jaiguru", claims.Issuer)
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	svc := NewJWTService("test-secret", "jaiguru", time.Hour)

	_, err := svc.GenerateToken("", "aswin")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuing := NewJWTService("secret-a", "jaiguru", time.Hour)
	validating := NewJWTService("secret-b", "jaiguru", time.Hour)

	token, err := issuing.GenerateToken("user-1", "")
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", "jaiguru", time.Nanosecond)

	token, err := svc.GenerateToken("user-1", "")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "jaiguru", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
