package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type createCommentRequest struct {
	Text          string  `json:"text" validate:"required"`
	Tweet         string  `json:"tweet" validate:"required"`
	ParentComment *string `json:"parentComment"`
}

type updateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create posts a comment on a tweet, or a reply when parentComment is set.
//
// @Summary      Create a comment or reply
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /comments/create [post]
func (h *CommentHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), ports.CreateCommentInput{
		Text:     req.Text,
		TweetID:  req.Tweet,
		UserID:   user.ID,
		ParentID: req.ParentComment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Message: "Comment created successfully",
		Data:    comment,
	})
}

// ByTweet lists the top-level comments of a tweet, newest first.
//
// @Summary      Comments on a tweet
// @Tags         comments
// @Produce      json
// @Param        tweetId  path  string  true  "Tweet id"
// @Success      200  {object}  commentListResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /comments/tweet/{tweetId} [get]
func (h *CommentHandler) ByTweet(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.commentService.ListTopLevel(c.Request().Context(), c.Param("tweetId"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCommentListResponse(items))
}

// Replies lists the replies to a comment, oldest first.
//
// @Summary      Replies to a comment
// @Tags         comments
// @Produce      json
// @Param        commentId  path  string  true  "Parent comment id"
// @Success      200  {object}  commentListResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /comments/reply/{commentId} [get]
func (h *CommentHandler) Replies(c echo.Context) error {
	items, err := h.commentService.ListReplies(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCommentListResponse(items))
}

// Update edits a comment's text. Owner only.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId  path      string                true  "Comment id"
// @Param        body       body      updateCommentRequest  true  "New text"
// @Success      200        {object}  successResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /comments/update/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.UpdateText(c.Request().Context(), c.Param("commentId"), user.ID, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Comment updated successfully",
		Data:    comment,
	})
}

// Delete soft-deletes a comment. Owner only.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Param        commentId  path  string  true  "Comment id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /comments/delete/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), c.Param("commentId"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Comment deleted successfully"})
}

// Like toggles the caller's like on a comment.
//
// @Summary      Like or unlike a comment
// @Tags         comments
// @Produce      json
// @Param        commentId  path  string  true  "Comment id"
// @Success      200  {object}  toggleResponse
// @Failure      404  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /comments/like/{commentId} [put]
func (h *CommentHandler) Like(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	res, err := h.commentService.ToggleLike(c.Request().Context(), c.Param("commentId"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newToggleResponse(res, "Comment liked", "Comment unliked"))
}
