package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"digieventos/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo  domain.UserRepository
	hasher    domain.PasswordHasher
	fileStore domain.FileStore
}

func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, fileStore domain.FileStore) domain.UserService {
	return &userService{
		userRepo:  userRepo,
		hasher:    hasher,
		fileStore: fileStore,
	}
}

func (s *userService) Create(ctx context.Context, email, name, password, role string, avatar *string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin && role != domain.RoleOwner {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
	}
	if avatar != nil && *avatar != "" {
		data, contentType, err := decodeDataURI(*avatar)
		if err != nil {
			return nil, err
		}
		url, err := s.fileStore.Upload(ctx, data, contentType, "avatars")
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		user.AvatarURL = &url
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// roleAllowsManaging reports whether callerRole may delete or reset the
// password of a user with targetRole. Admins manage only plain users; owners
// manage anyone except other owners.
func roleAllowsManaging(callerRole, targetRole string) bool {
	switch callerRole {
	case domain.RoleOwner:
		return targetRole != domain.RoleOwner
	case domain.RoleAdmin:
		return targetRole == domain.RoleUser
	default:
		return false
	}
}

func (s *userService) Delete(ctx context.Context, userID, callerRole string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !roleAllowsManaging(callerRole, user.Role) {
		return domain.ErrForbidden
	}
	// Cascades to the user's registrations at the store layer.
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd *domain.UserUpdate) (*domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if upd.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*upd.Email))
		if !emailRegexp.MatchString(email) {
			return nil, domain.ErrInvalidInput
		}
		if email != existing.Email {
			if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
				return nil, domain.ErrDuplicateEmail
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
		}
		upd.Email = &email
	}
	if upd.AvatarURL != nil && *upd.AvatarURL != "" && !upd.ClearAvatar {
		data, contentType, err := decodeDataURI(*upd.AvatarURL)
		if err != nil {
			return nil, err
		}
		url, err := s.fileStore.Upload(ctx, data, contentType, "avatars")
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		upd.AvatarURL = &url
	}

	user, err := s.userRepo.Update(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrInvalidInput
	}
	if newPassword == currentPassword {
		return domain.ErrInvalidInput
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, userID, callerRole, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !roleAllowsManaging(callerRole, user.Role) {
		return domain.ErrForbidden
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrInvalidInput
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
