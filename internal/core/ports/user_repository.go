package ports

import (
	"context"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// UserRepository defines persistence operations for user documents.
//
// AddFollow and RemoveFollow mutate the edge on both endpoint documents with
// atomic set operations. The two writes are not wrapped in a transaction; a
// crash between them can leave the graph asymmetric (documented gap).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns users for the given ids. Missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByUsernamePrefix returns up to limit active users whose username
	// starts with prefix, case-insensitive.
	FindByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)

	// EmailTaken reports whether an active user already holds the email.
	EmailTaken(ctx context.Context, email string) (bool, error)
	// UsernameTaken reports whether an active user other than excludeID
	// already holds the username. Pass excludeID "" for registration.
	UsernameTaken(ctx context.Context, username string, excludeID string) (bool, error)

	// Update persists profile field changes on an existing user.
	Update(ctx context.Context, user *domain.User) error
	SetRole(ctx context.Context, id string, role string) error
	SetActive(ctx context.Context, id string, active bool) error

	AddFollow(ctx context.Context, followerID, targetID string) error
	RemoveFollow(ctx context.Context, followerID, targetID string) error
}
