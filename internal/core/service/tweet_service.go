package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/api/metrics"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// TweetService covers tweet CRUD, the feed aggregator and engagement toggles.
type TweetService struct {
	tweets   ports.TweetRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewTweetService(tweets ports.TweetRepository, comments ports.CommentRepository, users ports.UserRepository, log zerolog.Logger) *TweetService {
	return &TweetService{tweets: tweets, comments: comments, users: users, log: log}
}

// Create posts a new tweet. A tweet must carry content, an image, or a
// retweet reference.
func (s *TweetService) Create(ctx context.Context, input ports.CreateTweetInput) (*domain.Tweet, error) {
	if len(input.Content) > domain.MaxTweetLength {
		return nil, fmt.Errorf("%w: content must be at most %d characters", domain.ErrValidation, domain.MaxTweetLength)
	}

	now := time.Now().UTC()
	tweet := &domain.Tweet{
		Content:   input.Content,
		Image:     input.Image,
		UserID:    input.UserID,
		Likes:     []string{},
		Bookmarks: []string{},
		RetweetID: input.RetweetID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !tweet.HasSubstance() {
		return nil, domain.ErrEmptyTweet
	}

	if input.RetweetID != nil {
		if _, err := s.tweets.FindByID(ctx, *input.RetweetID); err != nil {
			return nil, err
		}
	}

	created, err := s.tweets.Create(ctx, tweet)
	if err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}

	metrics.TweetsCreatedTotal.WithLabelValues(tweetKind(created)).Inc()
	s.log.Info().Str("tweet_id", created.ID).Str("user_id", input.UserID).Msg("tweet created")
	return created, nil
}

// Feed returns non-deleted tweets matching query, newest first, each shaped
// relative to the requesting user: author profile joined in, retweet payload
// resolved, and comment counts attached from one grouped count query.
func (s *TweetService) Feed(ctx context.Context, query ports.FeedQuery, requestingUserID string) ([]ports.FeedItem, error) {
	filter := ports.FeedFilter{
		UserID:       query.UserID,
		Hashtag:      strings.TrimPrefix(strings.ToLower(query.Hashtag), "#"),
		BookmarkedBy: query.BookmarkedBy,
	}

	if query.Username != "" {
		user, err := s.users.FindByUsername(ctx, query.Username)
		if err != nil {
			return nil, err
		}
		filter.UserID = user.ID
	}

	tweets, err := s.tweets.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return s.assemble(ctx, tweets, requestingUserID)
}

// GetByID returns a single tweet shaped for the requesting user.
func (s *TweetService) GetByID(ctx context.Context, tweetID, requestingUserID string) (*ports.FeedItem, error) {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	items, err := s.assemble(ctx, []*domain.Tweet{tweet}, requestingUserID)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update edits a tweet's content or image. Owner only.
func (s *TweetService) Update(ctx context.Context, input ports.UpdateTweetInput) (*domain.Tweet, error) {
	tweet, err := s.tweets.FindByID(ctx, input.TweetID)
	if err != nil {
		return nil, err
	}
	if tweet.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	if input.Content == "" && input.Image == "" {
		return nil, fmt.Errorf("%w: no content or image provided for update", domain.ErrValidation)
	}
	if len(input.Content) > domain.MaxTweetLength {
		return nil, fmt.Errorf("%w: content must be at most %d characters", domain.ErrValidation, domain.MaxTweetLength)
	}

	if input.Content != "" {
		tweet.Content = input.Content
	}
	if input.Image != "" {
		tweet.Image = input.Image
	}
	tweet.UpdatedAt = time.Now().UTC()

	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return tweet, nil
}

// Delete soft-deletes a tweet. Allowed for the owner or an admin; the tweet
// disappears from all subsequent reads but stays in storage.
func (s *TweetService) Delete(ctx context.Context, tweetID, userID, role string) error {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != userID && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.tweets.SoftDelete(ctx, tweetID); err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	s.log.Info().Str("tweet_id", tweetID).Str("user_id", userID).Msg("tweet deleted")
	return nil
}

// Retweet creates a retweet of the original. A user may retweet a given
// original at most once; a second attempt fails validation.
func (s *TweetService) Retweet(ctx context.Context, originalID, userID string) (*domain.Tweet, error) {
	if _, err := s.tweets.FindByID(ctx, originalID); err != nil {
		return nil, err
	}

	exists, err := s.tweets.HasRetweet(ctx, userID, originalID)
	if err != nil {
		return nil, fmt.Errorf("retweet: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRetweeted
	}

	now := time.Now().UTC()
	retweet := &domain.Tweet{
		Content:   "",
		UserID:    userID,
		Likes:     []string{},
		Bookmarks: []string{},
		RetweetID: &originalID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.tweets.Create(ctx, retweet)
	if err != nil {
		return nil, fmt.Errorf("retweet: %w", err)
	}

	metrics.TweetsCreatedTotal.WithLabelValues("retweet").Inc()
	s.log.Info().Str("tweet_id", created.ID).Str("original_id", originalID).Msg("retweeted")
	return created, nil
}

// ToggleLike adds or removes the user's like on the tweet and returns the new
// state and count. The underlying update is an atomic set operation.
func (s *TweetService) ToggleLike(ctx context.Context, tweetID, userID string) (*ports.ToggleResult, error) {
	if _, err := s.tweets.FindByID(ctx, tweetID); err != nil {
		return nil, err
	}
	liked, count, err := s.tweets.ToggleLike(ctx, tweetID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	metrics.EngagementTotal.WithLabelValues("tweet", toggleAction("like", liked)).Inc()
	return &ports.ToggleResult{Active: liked, Count: count}, nil
}

// ToggleBookmark adds or removes the user's bookmark on the tweet.
func (s *TweetService) ToggleBookmark(ctx context.Context, tweetID, userID string) (*ports.ToggleResult, error) {
	if _, err := s.tweets.FindByID(ctx, tweetID); err != nil {
		return nil, err
	}
	bookmarked, count, err := s.tweets.ToggleBookmark(ctx, tweetID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle bookmark: %w", err)
	}
	metrics.EngagementTotal.WithLabelValues("tweet", toggleAction("bookmark", bookmarked)).Inc()
	return &ports.ToggleResult{Active: bookmarked, Count: count}, nil
}

// assemble joins author profiles, resolves retweets and attaches grouped
// comment counts onto the tweets, avoiding one query per tweet.
func (s *TweetService) assemble(ctx context.Context, tweets []*domain.Tweet, requestingUserID string) ([]ports.FeedItem, error) {
	tweetIDs := make([]string, 0, len(tweets))
	originalIDs := make([]string, 0)
	for _, t := range tweets {
		tweetIDs = append(tweetIDs, t.ID)
		if t.RetweetID != nil {
			originalIDs = append(originalIDs, *t.RetweetID)
		}
	}

	originals := make(map[string]*domain.Tweet)
	if len(originalIDs) > 0 {
		found, err := s.tweets.FindByIDs(ctx, originalIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve retweets: %w", err)
		}
		for _, t := range found {
			originals[t.ID] = t
		}
	}

	authorIDs := make([]string, 0, len(tweets)+len(originals))
	for _, t := range tweets {
		authorIDs = append(authorIDs, t.UserID)
	}
	for _, t := range originals {
		authorIDs = append(authorIDs, t.UserID)
	}
	authors, err := s.authorMap(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("join authors: %w", err)
	}

	counts, err := s.comments.CountByTweetIDs(ctx, tweetIDs)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	items := make([]ports.FeedItem, 0, len(tweets))
	for _, t := range tweets {
		item := ports.FeedItem{
			Tweet:         *t,
			Author:        authors[t.UserID],
			CommentCount:  counts[t.ID],
			LikesCount:    len(t.Likes),
			BookmarkCount: len(t.Bookmarks),
			IsLiked:       t.LikedBy(requestingUserID),
			IsBookmarked:  t.BookmarkedBy(requestingUserID),
		}
		if t.RetweetID != nil {
			if original, ok := originals[*t.RetweetID]; ok {
				item.Original = &ports.OriginalTweet{
					Tweet:  *original,
					Author: authors[original.UserID],
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *TweetService) authorMap(ctx context.Context, ids []string) (map[string]domain.Profile, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[string]domain.Profile, len(users))
	for _, u := range users {
		m[u.ID] = u.Profile()
	}
	return m, nil
}

func tweetKind(t *domain.Tweet) string {
	if t.RetweetID != nil {
		return "retweet"
	}
	return "tweet"
}

func toggleAction(kind string, active bool) string {
	if active {
		return kind
	}
	return "un" + kind
}
