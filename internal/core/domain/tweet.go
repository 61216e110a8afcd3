package domain

import "time"

// MaxTweetLength is the content limit enforced at validation time.
const MaxTweetLength = 280

// Tweet is a post document. Likes and Bookmarks are the canonical record of
// engagement, stored as sets of user ids. A non-nil Retweet makes this a
// retweet of another tweet; retweets carry no content of their own.
type Tweet struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	UserID    string    `json:"user"`
	Likes     []string  `json:"likes"`
	Bookmarks []string  `json:"bookmarks"`
	RetweetID *string   `json:"retweet,omitempty"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasSubstance reports whether the tweet carries content, an image, or a
// retweet reference. A tweet with none of the three is rejected.
func (t *Tweet) HasSubstance() bool {
	return t.Content != "" || t.Image != "" || t.RetweetID != nil
}

// LikedBy reports whether the user id is in the like set.
func (t *Tweet) LikedBy(userID string) bool {
	return containsID(t.Likes, userID)
}

// BookmarkedBy reports whether the user id is in the bookmark set.
func (t *Tweet) BookmarkedBy(userID string) bool {
	return containsID(t.Bookmarks, userID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
