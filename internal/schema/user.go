// Package schema holds the request and response shapes of the HTTP API,
// independent of how records are stored.
package schema

import (
	"time"

	"threadai/internal/model"
)

// UserCreate is the payload for creating a user explicitly. Google accounts
// are only bound after sign-in verified them.
type UserCreate struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Name     string  `json:"name" validate:"required,max=255"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty" validate:"omitempty,max=1024"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty" validate:"omitempty,max=1024"`
}

// Apply returns a copy of user with the present fields replaced.
func (u UserUpdate) Apply(user model.User) model.User {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Username != nil {
		user.Username = u.Username
	}
	if u.Bio != nil {
		user.Bio = u.Bio
	}
	if u.Image != nil {
		user.Image = u.Image
	}
	return user
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  *string   `json:"username"`
	Bio       *string   `json:"bio"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile extends UserResponse with content counters.
type UserProfile struct {
	UserResponse
	PostsCount  int64 `json:"posts_count"`
	DraftsCount int64 `json:"drafts_count"`
}

// NewUserResponse maps a stored user to its public shape.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
