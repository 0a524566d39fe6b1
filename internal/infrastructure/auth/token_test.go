package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret", "promptory", time.Hour)
	require.NoError(t, err)

	raw, err := svc.Issue(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenService("secret-a", "promptory", time.Hour)
	require.NoError(t, err)
	validator, err := NewTokenService("secret-b", "promptory", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(1, "user@example.com")
	require.NoError(t, err)

	_, err = validator.Validate(raw)
	assert.Error(t, err)
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	issuer, err := NewTokenService("test-secret", "other-service", time.Hour)
	require.NoError(t, err)
	validator, err := NewTokenService("test-secret", "promptory", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(1, "user@example.com")
	require.NoError(t, err)

	_, err = validator.Validate(raw)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", "promptory", -time.Minute)
	require.NoError(t, err)

	raw, err := svc.Issue(1, "user@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	assert.Error(t, err)
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", "promptory", time.Hour)
	assert.Error(t, err)
}
