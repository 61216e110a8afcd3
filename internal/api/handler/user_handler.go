package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	images      ports.ImageStore
}

func NewUserHandler(userService ports.UserService, images ports.ImageStore) *UserHandler {
	return &UserHandler{userService: userService, images: images}
}

type followRequest struct {
	TargetUserID string `json:"targetUserId" validate:"required"`
}

type changeRoleRequest struct {
	UserID  string `json:"userId" validate:"required"`
	NewRole string `json:"newRole" validate:"required"`
}

type toggleStatusRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// UpdateProfile edits the caller's profile fields and avatar.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        fullName        formData  string  false  "Full name"
// @Param        username        formData  string  false  "Username"
// @Param        bio             formData  string  false  "Short bio"
// @Param        dateOfBirth     formData  string  false  "Date of birth (YYYY-MM-DD)"
// @Param        profilePicture  formData  file    false  "Avatar image"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/update-profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	dob, err := parseDateOfBirth(c.FormValue("dateOfBirth"))
	if err != nil {
		return err
	}

	picture, err := saveUploadedImage(c, h.images, "profilePicture")
	if err != nil {
		return err
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:         user.ID,
		FullName:       c.FormValue("fullName"),
		Username:       c.FormValue("username"),
		Bio:            c.FormValue("bio"),
		DateOfBirth:    dob,
		ProfilePicture: picture,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    updated,
	})
}

// Follow toggles the follow edge between the caller and the target user.
//
// @Summary      Follow or unfollow a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      followRequest  true  "Target user"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/follow [post]
func (h *UserHandler) Follow(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req followRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	following, err := h.userService.ToggleFollow(c.Request().Context(), user.ID, req.TargetUserID)
	if err != nil {
		return err
	}

	msg := "User unfollowed"
	if following {
		msg = "User followed"
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: msg})
}

// Followers lists the caller's followers.
//
// @Summary      List followers
// @Tags         users
// @Produce      json
// @Success      200  {object}  successResponse
// @Security     ApiKeyAuth
// @Router       /users/followers [get]
func (h *UserHandler) Followers(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	profiles, err := h.userService.Followers(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: profiles})
}

// Following lists the users the caller follows.
//
// @Summary      List following
// @Tags         users
// @Produce      json
// @Success      200  {object}  successResponse
// @Security     ApiKeyAuth
// @Router       /users/following [get]
func (h *UserHandler) Following(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	profiles, err := h.userService.Following(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: profiles})
}

// GetByUsername returns a user's public profile by username.
//
// @Summary      Get user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  successResponse
// @Failure      404       {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: user})
}

// ChangeRole sets a user's role. Admin only.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      changeRoleRequest  true  "User and role"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/change-role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangeRole(c.Request().Context(), req.UserID, req.NewRole); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Role updated successfully"})
}

// ToggleStatus activates or deactivates an account. Admin only.
//
// @Summary      Toggle a user's active status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      toggleStatusRequest  true  "User"
// @Success      200   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/toggle-status [put]
func (h *UserHandler) ToggleStatus(c echo.Context) error {
	var req toggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active, err := h.userService.ToggleStatus(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	msg := "User deactivated"
	if active {
		msg = "User activated"
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: msg})
}

// AllUsers lists every account. Admin only.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/all-users [get]
func (h *UserHandler) AllUsers(c echo.Context) error {
	users, err := h.userService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: users})
}
