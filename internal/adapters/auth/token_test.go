package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digieventos/internal/domain"
)

func TestJWTManager_IssueAndVerify(t *testing.T) {
	secret := "test-secret"
	issuer, verifier := NewJWTManager(secret)

	token, err := issuer.Issue("user-123", "u@example.com", domain.RoleAdmin, domain.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, domain.TokenTypeAccess, claims.TokenType)
}

func TestJWTManager_Issue_SignedClaims(t *testing.T) {
	secret := "test-secret"
	issuer, _ := NewJWTManager(secret)

	token, err := issuer.Issue("user-123", "u@example.com", domain.RoleUser, domain.TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, domain.TokenTypeRefresh, claims.TokenType)
}

func TestJWTManager_Verify_Errors(t *testing.T) {
	issuer, _ := NewJWTManager("secret-one")
	_, verifier := NewJWTManager("secret-two")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := issuer.Issue("user-123", "u@example.com", domain.RoleUser, domain.TokenTypeAccess, time.Hour)
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := issuer.Issue("user-123", "u@example.com", domain.RoleUser, domain.TokenTypeAccess, -time.Minute)
		require.NoError(t, err)
		_, sameSecretVerifier := NewJWTManager("secret-one")
		_, err = sameSecretVerifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.Error(t, err)
	})
}
