package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

type TweetHandler struct {
	tweetService ports.TweetService
	images       ports.ImageStore
}

func NewTweetHandler(tweetService ports.TweetService, images ports.ImageStore) *TweetHandler {
	return &TweetHandler{tweetService: tweetService, images: images}
}

// Create posts a new tweet. The body is multipart so an image can ride along.
//
// @Summary      Create a tweet
// @Tags         tweets
// @Accept       mpfd
// @Produce      json
// @Param        content  formData  string  false  "Tweet text (max 280 chars)"
// @Param        image    formData  file    false  "Attached image"
// @Param        retweet  formData  string  false  "Id of the tweet being reposted"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/create [post]
func (h *TweetHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	image, err := saveUploadedImage(c, h.images, "image")
	if err != nil {
		return err
	}

	input := ports.CreateTweetInput{
		UserID:  user.ID,
		Content: c.FormValue("content"),
		Image:   image,
	}
	if retweet := c.FormValue("retweet"); retweet != "" {
		input.RetweetID = &retweet
	}

	tweet, err := h.tweetService.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Message: "Tweet created successfully",
		Data:    tweet,
	})
}

// Feed returns the tweet feed, optionally filtered by author or bookmark
// membership.
//
// @Summary      Tweet feed
// @Tags         tweets
// @Produce      json
// @Param        userId      query  string  false  "Filter by author id"
// @Param        bookmarked  query  bool    false  "Only the caller's bookmarks"
// @Success      200  {object}  feedResponse
// @Security     ApiKeyAuth
// @Router       /tweets/all-tweets [get]
func (h *TweetHandler) Feed(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	query := ports.FeedQuery{UserID: c.QueryParam("userId")}
	if strings.EqualFold(c.QueryParam("bookmarked"), "true") {
		query.BookmarkedBy = user.ID
	}

	items, err := h.tweetService.Feed(c.Request().Context(), query, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newFeedResponse(items))
}

// ByUsername returns a user's tweets, newest first.
//
// @Summary      Tweets by username
// @Tags         tweets
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  feedResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/user/{username} [get]
func (h *TweetHandler) ByUsername(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.tweetService.Feed(c.Request().Context(),
		ports.FeedQuery{Username: c.Param("username")}, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newFeedResponse(items))
}

// ByHashtag returns tweets whose content carries the hashtag.
//
// @Summary      Tweets by hashtag
// @Tags         tweets
// @Produce      json
// @Param        tag  path  string  true  "Hashtag without the leading #"
// @Success      200  {object}  feedResponse
// @Security     ApiKeyAuth
// @Router       /tweets/hashtag/{tag} [get]
func (h *TweetHandler) ByHashtag(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.tweetService.Feed(c.Request().Context(),
		ports.FeedQuery{Hashtag: c.Param("tag")}, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newFeedResponse(items))
}

// GetByID returns one tweet with its engagement state and comment count.
//
// @Summary      Tweet detail
// @Tags         tweets
// @Produce      json
// @Param        id  path  string  true  "Tweet id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/tweet/{id} [get]
func (h *TweetHandler) GetByID(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	item, err := h.tweetService.GetByID(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: newTweetView(*item)})
}

// Update edits a tweet's content or image. Owner only.
//
// @Summary      Update a tweet
// @Tags         tweets
// @Accept       mpfd
// @Produce      json
// @Param        id       path      string  true   "Tweet id"
// @Param        content  formData  string  false  "New text"
// @Param        image    formData  file    false  "New image"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/update/{id} [put]
func (h *TweetHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	image, err := saveUploadedImage(c, h.images, "image")
	if err != nil {
		return err
	}

	tweet, err := h.tweetService.Update(c.Request().Context(), ports.UpdateTweetInput{
		TweetID: c.Param("id"),
		UserID:  user.ID,
		Content: c.FormValue("content"),
		Image:   image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Tweet updated successfully",
		Data:    tweet,
	})
}

// Delete soft-deletes a tweet. Owner or admin.
//
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Param        id  path  string  true  "Tweet id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/delete/{id} [delete]
func (h *TweetHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.tweetService.Delete(c.Request().Context(), c.Param("id"), user.ID, user.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Tweet deleted successfully"})
}

// Retweet reposts an existing tweet.
//
// @Summary      Retweet
// @Tags         tweets
// @Produce      json
// @Param        id  path  string  true  "Original tweet id"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/retweet/{id} [post]
func (h *TweetHandler) Retweet(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	tweet, err := h.tweetService.Retweet(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Message: "Retweeted successfully",
		Data:    tweet,
	})
}

// Like toggles the caller's like on a tweet.
//
// @Summary      Like or unlike a tweet
// @Tags         tweets
// @Produce      json
// @Param        id  path  string  true  "Tweet id"
// @Success      200  {object}  toggleResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/like/{id} [put]
func (h *TweetHandler) Like(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	res, err := h.tweetService.ToggleLike(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newToggleResponse(res, "Tweet liked", "Tweet unliked"))
}

// Bookmark toggles the caller's bookmark on a tweet.
//
// @Summary      Bookmark or unbookmark a tweet
// @Tags         tweets
// @Produce      json
// @Param        id  path  string  true  "Tweet id"
// @Success      200  {object}  toggleResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /tweets/bookmark/{id} [put]
func (h *TweetHandler) Bookmark(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	res, err := h.tweetService.ToggleBookmark(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newToggleResponse(res, "Tweet bookmarked", "Bookmark removed"))
}
