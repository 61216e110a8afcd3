package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// RequireRole gates a route group to users carrying one of the given roles.
// It must run after Auth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*domain.User)
			if !ok {
				return domain.ErrUnauthorized
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
