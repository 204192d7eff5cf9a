package domain

import (
	"context"
	"time"
)

// Application roles. Stored as a plain column on users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User represents an account.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	AvatarURL    *string   `json:"avatar_url"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserUpdate carries a partial profile update. Nil means "leave unchanged";
// ClearAvatar removes the avatar regardless of AvatarURL.
type UserUpdate struct {
	Name        *string
	Email       *string
	AvatarURL   *string
	ClearAvatar bool
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims is the identity carried by a verified token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	TokenType string
}

// Token types issued by the TokenIssuer.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenIssuer issues signed tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role, tokenType string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// TokenPair bundles the access and refresh tokens returned on login/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, upd *UserUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// UserService defines account management operations.
type UserService interface {
	Create(ctx context.Context, email, name, password, role string, avatar *string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// Delete removes a user. Admins may only delete plain users; nobody
	// deletes owners. Cascades to the user's registrations.
	Delete(ctx context.Context, userID, callerRole string) error
	UpdateProfile(ctx context.Context, userID string, upd *UserUpdate) (*User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// ResetPassword sets a new password without knowing the current one; same
	// role rules as Delete.
	ResetPassword(ctx context.Context, userID, callerRole, newPassword string) error
}

// AuthService defines authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*User, *TokenPair, error)
	Me(ctx context.Context, userID string) (*User, error)
}
