package ports

import (
	"context"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// CreateTweetInput carries the data for a new tweet. At least one of Content,
// Image or RetweetID must be present.
type CreateTweetInput struct {
	UserID    string
	Content   string
	Image     string // already-stored image reference, optional
	RetweetID *string
}

// UpdateTweetInput carries an owner's edit of an existing tweet.
type UpdateTweetInput struct {
	TweetID string
	UserID  string
	Content string // empty = unchanged
	Image   string // empty = unchanged
}

// FeedQuery selects which tweets make up the feed. Zero value = full feed.
type FeedQuery struct {
	UserID       string // author filter by id
	Username     string // author filter by username
	Hashtag      string // hashtag filter, leading '#' optional
	BookmarkedBy string // bookmark membership filter
}

// OriginalTweet is the resolved payload of a retweeted tweet.
type OriginalTweet struct {
	Tweet  domain.Tweet
	Author domain.Profile
}

// FeedItem is one tweet shaped for the requesting user: author profile
// joined in, retweet resolved, engagement state derived.
type FeedItem struct {
	Tweet         domain.Tweet
	Author        domain.Profile
	Original      *OriginalTweet
	CommentCount  int
	LikesCount    int
	BookmarkCount int
	IsLiked       bool
	IsBookmarked  bool
}

// ToggleResult reports the state after an engagement toggle.
type ToggleResult struct {
	Active bool // liked / bookmarked after the toggle
	Count  int
}

// TweetService covers tweet CRUD, the feed aggregator and engagement toggles.
type TweetService interface {
	Create(ctx context.Context, input CreateTweetInput) (*domain.Tweet, error)
	// Feed returns non-deleted tweets matching query, newest first, shaped
	// relative to the requesting user.
	Feed(ctx context.Context, query FeedQuery, requestingUserID string) ([]FeedItem, error)
	GetByID(ctx context.Context, tweetID, requestingUserID string) (*FeedItem, error)
	Update(ctx context.Context, input UpdateTweetInput) (*domain.Tweet, error)
	// Delete soft-deletes. Allowed for the owner or an admin.
	Delete(ctx context.Context, tweetID, userID, role string) error
	Retweet(ctx context.Context, originalID, userID string) (*domain.Tweet, error)
	ToggleLike(ctx context.Context, tweetID, userID string) (*ToggleResult, error)
	ToggleBookmark(ctx context.Context, tweetID, userID string) (*ToggleResult, error)
}
