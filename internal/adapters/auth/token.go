package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"digieventos/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
}

type jwtManager struct {
	secret []byte
}

// NewJWTManager returns a TokenIssuer/TokenVerifier pair that signs JWTs with
// HS256 using the given secret.
func NewJWTManager(secret string) (domain.TokenIssuer, domain.TokenVerifier) {
	m := &jwtManager{secret: []byte(secret)}
	return m, m
}

func (m *jwtManager) Issue(userID, email, role, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:     email,
		Role:      role,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *jwtManager) Verify(tokenString string) (*domain.TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &domain.TokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenType: claims.TokenType,
	}, nil
}
