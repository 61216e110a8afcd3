package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/api/metrics"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// CommentService is the comment thread accessor.
type CommentService struct {
	comments ports.CommentRepository
	tweets   ports.TweetRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, tweets ports.TweetRepository, users ports.UserRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, tweets: tweets, users: users, log: log}
}

// Create posts a comment or reply. Commenting on a missing or deleted tweet
// is rejected.
func (s *CommentService) Create(ctx context.Context, input ports.CreateCommentInput) (*domain.Comment, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}

	if _, err := s.tweets.FindByID(ctx, input.TweetID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		Text:      input.Text,
		TweetID:   input.TweetID,
		UserID:    input.UserID,
		ParentID:  input.ParentID,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().Str("comment_id", created.ID).Str("tweet_id", input.TweetID).Msg("comment created")
	return created, nil
}

// ListTopLevel returns the tweet's top-level comments, newest first, each
// annotated with the like count and whether the requesting user liked it.
func (s *CommentService) ListTopLevel(ctx context.Context, tweetID, requestingUserID string) ([]ports.CommentView, error) {
	comments, err := s.comments.ListTopLevel(ctx, tweetID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return s.annotate(ctx, comments, requestingUserID)
}

// ListReplies returns the comment's replies, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, parentID string) ([]ports.CommentView, error) {
	replies, err := s.comments.ListReplies(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return s.annotate(ctx, replies, "")
}

// UpdateText edits a comment's text. Owner only.
func (s *CommentService) UpdateText(ctx context.Context, commentID, userID, text string) (*domain.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if err := s.comments.UpdateText(ctx, commentID, text); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	comment.Text = text
	comment.UpdatedAt = time.Now().UTC()
	return comment, nil
}

// Delete soft-deletes a comment. Owner only.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.comments.SoftDelete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.log.Info().Str("comment_id", commentID).Str("user_id", userID).Msg("comment deleted")
	return nil
}

// ToggleLike adds or removes the user's like on the comment and returns the
// new state and count.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID string) (*ports.ToggleResult, error) {
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return nil, err
	}
	liked, count, err := s.comments.ToggleLike(ctx, commentID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle comment like: %w", err)
	}
	metrics.EngagementTotal.WithLabelValues("comment", toggleAction("like", liked)).Inc()
	return &ports.ToggleResult{Active: liked, Count: count}, nil
}

func (s *CommentService) annotate(ctx context.Context, comments []*domain.Comment, requestingUserID string) ([]ports.CommentView, error) {
	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	users, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("join comment authors: %w", err)
	}
	authors := make(map[string]domain.Profile, len(users))
	for _, u := range users {
		authors[u.ID] = u.Profile()
	}

	views := make([]ports.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, ports.CommentView{
			Comment:    *c,
			Author:     authors[c.UserID],
			LikesCount: len(c.Likes),
			IsLiked:    requestingUserID != "" && c.LikedBy(requestingUserID),
		})
	}
	return views, nil
}
