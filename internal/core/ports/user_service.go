package ports

import (
	"context"
	"time"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// UpdateProfileInput carries the editable profile fields. Empty strings and
// nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	UserID         string
	FullName       string
	Username       string
	Bio            string
	DateOfBirth    *time.Time
	ProfilePicture string // new stored image reference, optional
}

// UserService covers the social graph and account administration.
type UserService interface {
	// ToggleFollow symmetrically adds or removes the follow edge between the
	// two users based on current membership, and reports the new state.
	ToggleFollow(ctx context.Context, currentUserID, targetUserID string) (following bool, err error)
	Followers(ctx context.Context, userID string) ([]domain.Profile, error)
	Following(ctx context.Context, userID string) ([]domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)

	// Admin-only operations. Role gating happens at the middleware layer.
	ChangeRole(ctx context.Context, userID, role string) error
	ToggleStatus(ctx context.Context, userID string) (active bool, err error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
