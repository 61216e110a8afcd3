package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// userRepoStub satisfies ports.UserRepository for the lookups the middleware
// performs; everything else is unused here.
type userRepoStub struct {
	users map[string]*domain.User
}

func (r *userRepoStub) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepoStub) Create(context.Context, *domain.User) (*domain.User, error) { return nil, nil }
func (r *userRepoStub) FindByIDs(context.Context, []string) ([]*domain.User, error) {
	return nil, nil
}
func (r *userRepoStub) FindByEmail(context.Context, string) (*domain.User, error) { return nil, nil }
func (r *userRepoStub) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (r *userRepoStub) FindByUsernamePrefix(context.Context, string, int) ([]*domain.User, error) {
	return nil, nil
}
func (r *userRepoStub) ListAll(context.Context) ([]*domain.User, error)       { return nil, nil }
func (r *userRepoStub) EmailTaken(context.Context, string) (bool, error)      { return false, nil }
func (r *userRepoStub) UsernameTaken(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *userRepoStub) Update(context.Context, *domain.User) error          { return nil }
func (r *userRepoStub) SetRole(context.Context, string, string) error       { return nil }
func (r *userRepoStub) SetActive(context.Context, string, bool) error       { return nil }
func (r *userRepoStub) AddFollow(context.Context, string, string) error     { return nil }
func (r *userRepoStub) RemoveFollow(context.Context, string, string) error  { return nil }

type revokerStub struct {
	revoked map[string]bool
}

func (r *revokerStub) Revoke(_ context.Context, token string, _ time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]bool)
	}
	r.revoked[token] = true
	return nil
}

func (r *revokerStub) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

func signToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": "alice@example.com",
		"role":  domain.RoleUser,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func activeUserRepo(id string) *userRepoStub {
	return &userRepoStub{users: map[string]*domain.User{
		id: {ID: id, Username: "alice", Role: domain.RoleUser, IsActive: true},
	}}
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, setup func(*http.Request)) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidBearerToken(t *testing.T) {
	signed := signToken(t, "secret", "u1", time.Hour)
	mw := Auth("secret", activeUserRepo("u1"), &revokerStub{})

	c, err := runAuth(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	user, ok := c.Get(ContextUserKey).(*domain.User)
	if !ok || user.ID != "u1" {
		t.Fatalf("user not attached to context")
	}
	if token, _ := c.Get(ContextTokenKey).(string); token != signed {
		t.Fatalf("raw token not attached to context")
	}
}

func TestAuth_ValidCookieToken(t *testing.T) {
	signed := signToken(t, "secret", "u1", time.Hour)
	mw := Auth("secret", activeUserRepo("u1"), &revokerStub{})

	_, err := runAuth(t, mw, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: signed})
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	mw := Auth("secret", activeUserRepo("u1"), &revokerStub{})

	_, err := runAuth(t, mw, nil)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	signed := signToken(t, "secret", "u1", -time.Minute)
	mw := Auth("secret", activeUserRepo("u1"), &revokerStub{})

	_, err := runAuth(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	signed := signToken(t, "other-secret", "u1", time.Hour)
	mw := Auth("secret", activeUserRepo("u1"), &revokerStub{})

	_, err := runAuth(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %v", err)
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	signed := signToken(t, "secret", "u1", time.Hour)
	revoker := &revokerStub{}
	_ = revoker.Revoke(context.Background(), signed, time.Hour)
	mw := Auth("secret", activeUserRepo("u1"), revoker)

	_, err := runAuth(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %v", err)
	}
}

func TestAuth_DeactivatedUser(t *testing.T) {
	signed := signToken(t, "secret", "u1", time.Hour)
	repo := &userRepoStub{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice", Role: domain.RoleUser, IsActive: false},
	}}
	mw := Auth("secret", repo, &revokerStub{})

	_, err := runAuth(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	if err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestAuth_UnknownUser(t *testing.T) {
	signed := signToken(t, "secret", "ghost", time.Hour)
	mw := Auth("secret", activeUserRepo("u1"), &revokerStub{})

	_, err := runAuth(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %v", err)
	}
}
