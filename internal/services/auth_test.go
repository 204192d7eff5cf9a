package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"digieventos/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleUser, PasswordHash: "hashed:secret-password"}

	tests := []struct {
		name     string
		repo     *mockUserRepository
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "success",
			repo:     &mockUserRepository{byEmail: map[string]*domain.User{"ana@example.com": user}},
			email:    "ana@example.com",
			password: "secret-password",
		},
		{
			name:     "email is normalized before lookup",
			repo:     &mockUserRepository{byEmail: map[string]*domain.User{"ana@example.com": user}},
			email:    "  Ana@Example.com ",
			password: "secret-password",
		},
		{
			name:     "unknown email",
			repo:     &mockUserRepository{byEmail: map[string]*domain.User{}},
			email:    "ghost@example.com",
			password: "secret-password",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			repo:     &mockUserRepository{byEmail: map[string]*domain.User{"ana@example.com": user}},
			email:    "ana@example.com",
			password: "wrong",
			wantErr:  domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mockTokens{}
			svc := NewAuthService(tt.repo, &mockHasher{}, tokens, tokens, 15*time.Minute, 7*24*time.Hour)
			got, pair, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != "u1" {
				t.Errorf("expected user u1, got %+v", got)
			}
			if pair.AccessToken != domain.TokenTypeAccess+"-token-u1" {
				t.Errorf("unexpected access token %q", pair.AccessToken)
			}
			if pair.RefreshToken != domain.TokenTypeRefresh+"-token-u1" {
				t.Errorf("unexpected refresh token %q", pair.RefreshToken)
			}
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleUser}

	tests := []struct {
		name    string
		repo    *mockUserRepository
		tokens  *mockTokens
		wantErr error
	}{
		{
			name: "success",
			repo: &mockUserRepository{users: map[string]*domain.User{"u1": user}},
			tokens: &mockTokens{verifyClaims: &domain.TokenClaims{
				UserID: "u1", TokenType: domain.TokenTypeRefresh,
			}},
		},
		{
			name: "access token is rejected",
			repo: &mockUserRepository{users: map[string]*domain.User{"u1": user}},
			tokens: &mockTokens{verifyClaims: &domain.TokenClaims{
				UserID: "u1", TokenType: domain.TokenTypeAccess,
			}},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "invalid token",
			repo:    &mockUserRepository{users: map[string]*domain.User{"u1": user}},
			tokens:  &mockTokens{verifyErr: errors.New("bad signature")},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "deleted user",
			repo: &mockUserRepository{users: map[string]*domain.User{}},
			tokens: &mockTokens{verifyClaims: &domain.TokenClaims{
				UserID: "u1", TokenType: domain.TokenTypeRefresh,
			}},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.repo, &mockHasher{}, tt.tokens, tt.tokens, 15*time.Minute, 7*24*time.Hour)
			got, pair, err := svc.Refresh(context.Background(), "some-refresh-token")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != "u1" {
				t.Errorf("expected user u1, got %+v", got)
			}
			if pair.AccessToken == "" || pair.RefreshToken == "" {
				t.Errorf("expected fresh token pair, got %+v", pair)
			}
		})
	}
}
