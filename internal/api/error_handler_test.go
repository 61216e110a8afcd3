package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrUsernameTaken, http.StatusBadRequest},
		{domain.ErrSelfFollow, http.StatusBadRequest},
		{domain.ErrAlreadyRetweeted, http.StatusBadRequest},
		{domain.ErrEmptyTweet, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAccountDeactivated, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrTweetNotFound, http.StatusNotFound},
		{domain.ErrCommentNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		rec, body := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if !body.Error || body.Message != tc.err.Error() {
			t.Errorf("%v: unexpected envelope %+v", tc.err, body)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrTweetNotFound)
	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped error, got %d", rec.Code)
	}
}

func TestErrorHandler_UnknownErrorHidesDetails(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal details leaked: %q", body.Message)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusNotFound, "route not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body.Message != "route not found" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}
