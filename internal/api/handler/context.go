package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/api/middleware"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware.
// Its absence means the route was registered without the middleware, which is
// a wiring bug, so it surfaces as 401 rather than a panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
