package ports

import (
	"context"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// CreateCommentInput carries the data for a new comment or reply.
type CreateCommentInput struct {
	Text     string
	TweetID  string
	UserID   string
	ParentID *string // nil = top-level comment
}

// CommentView is a comment annotated for the requesting user.
type CommentView struct {
	Comment    domain.Comment
	Author     domain.Profile
	LikesCount int
	IsLiked    bool
}

// CommentService covers the comment thread accessor.
type CommentService interface {
	Create(ctx context.Context, input CreateCommentInput) (*domain.Comment, error)
	ListTopLevel(ctx context.Context, tweetID, requestingUserID string) ([]CommentView, error)
	ListReplies(ctx context.Context, parentID string) ([]CommentView, error)
	// UpdateText and Delete are owner-only.
	UpdateText(ctx context.Context, commentID, userID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, userID string) error
	ToggleLike(ctx context.Context, commentID, userID string) (*ToggleResult, error)
}
