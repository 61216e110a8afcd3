package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// UserService covers the social graph and account administration.
type UserService struct {
	users  ports.UserRepository
	images ports.ImageStore
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, images ports.ImageStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, images: images, log: log}
}

// ToggleFollow adds or removes the follow edge between the two users based on
// current membership in the follower's following list. The edge is written to
// both documents with atomic set operations; the pair of writes is not
// transactional.
func (s *UserService) ToggleFollow(ctx context.Context, currentUserID, targetUserID string) (bool, error) {
	if currentUserID == targetUserID {
		return false, domain.ErrSelfFollow
	}

	current, err := s.users.FindByID(ctx, currentUserID)
	if err != nil {
		return false, err
	}
	if _, err := s.users.FindByID(ctx, targetUserID); err != nil {
		return false, err
	}

	if current.IsFollowing(targetUserID) {
		if err := s.users.RemoveFollow(ctx, currentUserID, targetUserID); err != nil {
			return false, fmt.Errorf("unfollow: %w", err)
		}
		s.log.Info().Str("user_id", currentUserID).Str("target_id", targetUserID).Msg("unfollowed")
		return false, nil
	}

	if err := s.users.AddFollow(ctx, currentUserID, targetUserID); err != nil {
		return false, fmt.Errorf("follow: %w", err)
	}
	s.log.Info().Str("user_id", currentUserID).Str("target_id", targetUserID).Msg("followed")
	return true, nil
}

// Followers resolves the user's follower ids to public profiles.
func (s *UserService) Followers(ctx context.Context, userID string) ([]domain.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, user.Followers)
}

// Following resolves the user's following ids to public profiles.
func (s *UserService) Following(ctx context.Context, userID string) ([]domain.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, user.Following)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// UpdateProfile applies the non-empty fields of input to the user. A new
// profile picture replaces the old one, which is removed from the image store.
func (s *UserService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	if err := validateDateOfBirth(input.DateOfBirth); err != nil {
		return nil, err
	}
	if len(input.Bio) > 160 {
		return nil, fmt.Errorf("%w: bio must be at most 160 characters", domain.ErrValidation)
	}

	if input.Username != "" && input.Username != user.Username {
		taken, err := s.users.UsernameTaken(ctx, input.Username, user.ID)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
		user.Username = input.Username
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.ProfilePicture != "" {
		if user.ProfilePicture != "" && s.images != nil {
			if err := s.images.Remove(ctx, user.ProfilePicture); err != nil {
				s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to remove previous profile picture")
			}
		}
		user.ProfilePicture = input.ProfilePicture
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangeRole sets the user's role. Role must be one of the enumerated values.
func (s *UserService) ChangeRole(ctx context.Context, userID, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return fmt.Errorf("change role: %w", err)
	}
	s.log.Info().Str("user_id", userID).Str("role", role).Msg("role changed")
	return nil
}

// ToggleStatus flips the account's active flag and returns the new state.
// Accounts are never hard-deleted; deactivation is the terminal state.
func (s *UserService) ToggleStatus(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	active := !user.IsActive
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return false, fmt.Errorf("toggle status: %w", err)
	}
	s.log.Info().Str("user_id", userID).Bool("active", active).Msg("account status toggled")
	return active, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}

func (s *UserService) profiles(ctx context.Context, ids []string) ([]domain.Profile, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out, nil
}
