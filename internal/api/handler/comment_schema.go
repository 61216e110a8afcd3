package handler

import (
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// commentView is one comment with its author joined in and like state
// relative to the requesting user.
type commentView struct {
	domain.Comment
	Author     domain.Profile `json:"author"`
	LikesCount int            `json:"likesCount"`
	IsLiked    bool           `json:"isLiked"`
}

// commentListResponse is the envelope for comment list endpoints.
type commentListResponse struct {
	Success  bool          `json:"success"`
	Count    int           `json:"count"`
	Comments []commentView `json:"comments"`
}

func newCommentListResponse(items []ports.CommentView) commentListResponse {
	views := make([]commentView, 0, len(items))
	for _, item := range items {
		views = append(views, commentView{
			Comment:    item.Comment,
			Author:     item.Author,
			LikesCount: item.LikesCount,
			IsLiked:    item.IsLiked,
		})
	}
	return commentListResponse{Success: true, Count: len(views), Comments: views}
}
