package domain

import "errors"

// Sentinel errors returned by services and repositories. The API layer maps
// each of these to a deterministic HTTP status in internal/api/error_handler.go.
var (
	// Validation (400)
	ErrValidation       = errors.New("validation failed")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrSelfFollow       = errors.New("you can't follow yourself")
	ErrAlreadyRetweeted = errors.New("you already retweeted this tweet")
	ErrEmptyTweet       = errors.New("tweet content or image is required")
	ErrInvalidRole      = errors.New("invalid role")

	// Auth (401)
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Privilege (403)
	ErrForbidden          = errors.New("not authorized")
	ErrAccountDeactivated = errors.New("account is deactivated")

	// Missing (404)
	ErrUserNotFound    = errors.New("user not found")
	ErrTweetNotFound   = errors.New("tweet not found")
	ErrCommentNotFound = errors.New("comment not found")
)
