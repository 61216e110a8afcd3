package handler

import (
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// originalTweetView is the resolved payload of a retweeted tweet.
type originalTweetView struct {
	domain.Tweet
	Author domain.Profile `json:"author"`
}

// tweetView is one feed entry: the tweet with its author joined in, the
// original resolved when it is a retweet, and engagement state relative to
// the requesting user.
type tweetView struct {
	domain.Tweet
	Author        domain.Profile     `json:"author"`
	Original      *originalTweetView `json:"original,omitempty"`
	CommentCount  int                `json:"commentCount"`
	LikesCount    int                `json:"likesCount"`
	BookmarkCount int                `json:"bookmarkCount"`
	IsLiked       bool               `json:"isLiked"`
	IsBookmarked  bool               `json:"isBookmarked"`
}

// feedResponse is the envelope for tweet list endpoints.
type feedResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Tweets  []tweetView `json:"tweets"`
}

func newTweetView(item ports.FeedItem) tweetView {
	view := tweetView{
		Tweet:         item.Tweet,
		Author:        item.Author,
		CommentCount:  item.CommentCount,
		LikesCount:    item.LikesCount,
		BookmarkCount: item.BookmarkCount,
		IsLiked:       item.IsLiked,
		IsBookmarked:  item.IsBookmarked,
	}
	if item.Original != nil {
		view.Original = &originalTweetView{Tweet: item.Original.Tweet, Author: item.Original.Author}
	}
	return view
}

func newFeedResponse(items []ports.FeedItem) feedResponse {
	views := make([]tweetView, 0, len(items))
	for _, item := range items {
		views = append(views, newTweetView(item))
	}
	return feedResponse{Success: true, Count: len(views), Tweets: views}
}
