package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/api/metrics"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

const (
	// TokenCookieName is the session cookie set at login.
	TokenCookieName = "token"
	// ContextUserKey holds the authenticated *domain.User.
	ContextUserKey = "user"
	// ContextTokenKey holds the raw session token (needed by logout).
	ContextTokenKey = "session_token"
)

// Auth verifies the session token from the cookie or the Authorization
// header, rejects revoked tokens, loads the referenced user and attaches it
// to the request context. Deactivated accounts are rejected even when their
// token is still valid.
func Auth(jwtSecret string, users ports.UserRepository, revoker ports.SessionRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if revoker != nil {
				// A denylist read failure does not lock everyone out; the
				// token signature has already been verified.
				if revoked, revErr := revoker.IsRevoked(c.Request().Context(), token); revErr == nil && revoked {
					metrics.AuthFailuresTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
			}

			userID, _ := claims["id"].(string)
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("user_missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}
			if !user.IsActive {
				metrics.AuthFailuresTotal.WithLabelValues("deactivated").Inc()
				return domain.ErrAccountDeactivated
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextTokenKey, token)
			return next(c)
		}
	}
}

// extractToken reads the session token from the cookie, falling back to an
// Authorization: Bearer header.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
