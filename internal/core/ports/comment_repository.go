package ports

import (
	"context"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// CommentRepository defines persistence operations for comment documents.
// Soft-deleted comments are invisible to every read.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListTopLevel returns non-deleted comments on the tweet with no parent,
	// newest first.
	ListTopLevel(ctx context.Context, tweetID string) ([]*domain.Comment, error)
	// ListReplies returns non-deleted children of the parent comment, oldest
	// first (chronological reading order).
	ListReplies(ctx context.Context, parentID string) ([]*domain.Comment, error)

	UpdateText(ctx context.Context, id string, text string) error
	SoftDelete(ctx context.Context, id string) error

	// ToggleLike atomically adds or removes userID from the like set.
	ToggleLike(ctx context.Context, commentID, userID string) (liked bool, count int, err error)

	// CountByTweetIDs groups non-deleted comments by tweet id and returns the
	// counts for the given tweets in one round-trip.
	CountByTweetIDs(ctx context.Context, tweetIDs []string) (map[string]int, error)
}
