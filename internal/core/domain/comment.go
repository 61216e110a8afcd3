package domain

import "time"

// Comment is a comment document. A nil ParentID marks a top-level comment on
// the tweet; a non-nil ParentID marks a reply to another comment.
type Comment struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	TweetID   string    `json:"tweet"`
	UserID    string    `json:"user"`
	ParentID  *string   `json:"parentComment,omitempty"`
	Likes     []string  `json:"likes"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikedBy reports whether the user id is in the like set.
func (c *Comment) LikedBy(userID string) bool {
	return containsID(c.Likes, userID)
}
