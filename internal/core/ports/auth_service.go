package ports

import (
	"context"
	"time"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	Bio            string
	DateOfBirth    *time.Time
	ProfilePicture string // already-stored image reference, optional
}

// CurrentUserResult is the authenticated user's own profile with the
// follower/following id lists resolved to public profiles.
type CurrentUserResult struct {
	User      *domain.User
	Followers []domain.Profile
	Following []domain.Profile
}

// AuthService implements account registration and session management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the given session token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID string) (*CurrentUserResult, error)
}

// SessionRevoker is the logout denylist. Revoked tokens fail authentication
// until they would have expired anyway.
type SessionRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
