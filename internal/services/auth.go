package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digieventos/internal/domain"
)

type authService struct {
	userRepo   domain.UserRepository
	hasher     domain.PasswordHasher
	issuer     domain.TokenIssuer
	verifier   domain.TokenVerifier
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	accessTTL, refreshTTL time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		issuer:     issuer,
		verifier:   verifier,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) issuePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := s.issuer.Issue(user.ID, user.Email, user.Role, domain.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.issuer.Issue(user.ID, user.Email, user.Role, domain.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	claims, err := s.verifier.Verify(refreshToken)
	if err != nil || claims.TokenType != domain.TokenTypeRefresh {
		return nil, nil, domain.ErrInvalidCredentials
	}
	// Re-read the user so revoked accounts and role changes take effect.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
