package ports

import (
	"context"
	"time"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// FeedFilter carries the optional query parameters for listing tweets.
// At most one of the fields is normally set; all-empty means the full feed.
type FeedFilter struct {
	UserID       string // only tweets authored by this user
	Hashtag      string // word-boundary, case-insensitive match on content
	BookmarkedBy string // only tweets bookmarked by this user
}

// TweetRepository defines persistence operations for tweet documents.
// Soft-deleted tweets are invisible to every read: finders return
// domain.ErrTweetNotFound and listings omit them.
//
// ToggleLike and ToggleBookmark are atomic set toggles keyed on current
// membership. Implementations must express them as guarded add/remove-from-set
// updates so concurrent toggles from distinct users never lose writes.
type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error)
	FindByID(ctx context.Context, id string) (*domain.Tweet, error)
	// FindByIDs returns non-deleted tweets for the given ids, skipping misses.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Tweet, error)
	// List returns non-deleted tweets matching filter, newest first.
	List(ctx context.Context, filter FeedFilter) ([]*domain.Tweet, error)
	// ListCreatedSince returns non-deleted tweets created at or after since,
	// used to scope trending hashtag counting.
	ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Tweet, error)
	// ListMatchingHashtag returns non-deleted tweets whose content contains
	// '#'+query as a case-insensitive substring (search suggestions scope).
	ListMatchingHashtag(ctx context.Context, query string) ([]*domain.Tweet, error)

	Update(ctx context.Context, tweet *domain.Tweet) error
	SoftDelete(ctx context.Context, id string) error

	// HasRetweet reports whether userID already has a non-deleted retweet of
	// the given original tweet.
	HasRetweet(ctx context.Context, userID, originalID string) (bool, error)

	ToggleLike(ctx context.Context, tweetID, userID string) (liked bool, count int, err error)
	ToggleBookmark(ctx context.Context, tweetID, userID string) (bookmarked bool, count int, err error)
}
