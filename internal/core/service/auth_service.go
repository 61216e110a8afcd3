package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sparrowapp/sparrow-api/internal/api/metrics"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// AuthService implements registration, login, logout and the current-user view.
type AuthService struct {
	users     ports.UserRepository
	revoker   ports.SessionRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, revoker ports.SessionRevoker, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a new account. Email and username uniqueness among active
// accounts is checked explicitly so the caller gets a clean error rather than
// a duplicate-key failure from the store.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if len(input.Bio) > 160 {
		return nil, fmt.Errorf("%w: bio must be at most 160 characters", domain.ErrValidation)
	}
	if err := validateDateOfBirth(input.DateOfBirth); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	taken, err = s.users.UsernameTaken(ctx, input.Username, "")
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:       input.FullName,
		Username:       strings.TrimSpace(input.Username),
		Email:          email,
		PasswordHash:   string(hash),
		ProfilePicture: input.ProfilePicture,
		Bio:            input.Bio,
		Followers:      []string{},
		Following:      []string{},
		Role:           domain.RoleUser,
		IsActive:       true,
		DateOfBirth:    input.DateOfBirth,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.SignupsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials against an active account and returns a signed
// session token alongside the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !user.IsActive {
		return "", nil, domain.ErrAccountDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Logout revokes the token for its remaining lifetime so it cannot be reused
// after the session cookie is cleared.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return domain.ErrUnauthorized
	}

	ttl := s.tokenTTL
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	if err := s.revoker.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns the user's own profile with follower and following ids
// resolved to public profiles.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*ports.CurrentUserResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.resolveProfiles(ctx, user.Followers)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	following, err := s.resolveProfiles(ctx, user.Following)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &ports.CurrentUserResult{User: user, Followers: followers, Following: following}, nil
}

func (s *AuthService) resolveProfiles(ctx context.Context, ids []string) ([]domain.Profile, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validateDateOfBirth enforces a plausible age range when a date is supplied.
func validateDateOfBirth(dob *time.Time) error {
	if dob == nil {
		return nil
	}
	age := time.Now().Year() - dob.Year()
	if age < 13 || age > 120 {
		return fmt.Errorf("%w: age must be between 13 and 120 years", domain.ErrValidation)
	}
	return nil
}
