package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/api/middleware"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	images        ports.ImageStore
	tokenTTL      time.Duration
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, images ports.ImageStore, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		images:        images,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        fullName        formData  string  true   "Full name"
// @Param        username        formData  string  true   "Username"
// @Param        email           formData  string  true   "Email address"
// @Param        password        formData  string  true   "Password"
// @Param        bio             formData  string  false  "Short bio"
// @Param        dateOfBirth     formData  string  false  "Date of birth (YYYY-MM-DD)"
// @Param        profilePicture  formData  file    false  "Avatar image"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Router       /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	dob, err := parseDateOfBirth(c.FormValue("dateOfBirth"))
	if err != nil {
		return err
	}

	picture, err := saveUploadedImage(c, h.images, "profilePicture")
	if err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName:       c.FormValue("fullName"),
		Username:       c.FormValue("username"),
		Email:          c.FormValue("email"),
		Password:       c.FormValue("password"),
		Bio:            c.FormValue("bio"),
		DateOfBirth:    dob,
		ProfilePicture: picture,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login verifies credentials, sets the session cookie and returns the token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.tokenTTL))

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Logged in successfully",
		Data:    user,
		Token:   token,
	})
}

// Logout revokes the current session token and clears the cookie.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.ContextTokenKey).(string)
	if token == "" {
		return domain.ErrUnauthorized
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie("", -time.Hour))

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// CurrentUser returns the caller's profile with followers and following
// resolved to public profiles.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /users/current-user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	result, err := h.authService.CurrentUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Data: currentUserView{
			User:      result.User,
			Followers: result.Followers,
			Following: result.Following,
		},
	})
}

func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		// Cross-site frontends need SameSite=None, which browsers only
		// accept together with Secure.
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
		MaxAge:   int(maxAge.Seconds()),
	}
}
