package handler

import (
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// errorResponse mirrors the envelope rendered by the error handler; it is
// declared here so the swagger annotations can reference it.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// successResponse is the canonical success envelope.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// loginResponse extends the envelope with the session token so API clients
// that cannot use the cookie can send it as a Bearer header.
type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *domain.User `json:"data"`
	Token   string       `json:"token"`
}

// currentUserView is the caller's own profile with follower/following ids
// resolved to public profiles.
type currentUserView struct {
	*domain.User
	Followers []domain.Profile `json:"followers"`
	Following []domain.Profile `json:"following"`
}

// toggleResponse reports the state after a like/bookmark/follow toggle.
type toggleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
	Active  bool   `json:"active"`
}

func newToggleResponse(res *ports.ToggleResult, onMsg, offMsg string) toggleResponse {
	msg := offMsg
	if res.Active {
		msg = onMsg
	}
	return toggleResponse{Success: true, Message: msg, Count: res.Count, Active: res.Active}
}
