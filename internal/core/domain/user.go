package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the enumerated account roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is an account document. Followers and Following hold the social graph
// edge redundantly on both endpoints; PasswordHash is never serialized.
type User struct {
	ID             string     `json:"_id"`
	FullName       string     `json:"fullName"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	Bio            string     `json:"bio"`
	Followers      []string   `json:"followers"`
	Following      []string   `json:"following"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Profile is the public subset of a user attached to tweets, comments and
// follower lists.
type Profile struct {
	ID             string `json:"_id"`
	FullName       string `json:"fullName"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Profile returns the public view of u.
func (u *User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		FullName:       u.FullName,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsFollowing reports whether u follows the user with the given id.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}
