// Data Transfer Objects for the users module.
package users

import (
	"time"

	"github.com/user/blogapi-go/auth"
)

// UserResponse represents the public projection of a user profile. The
// password hash has no field here at all.
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"johndoe@example.com"`
	Username  string    `json:"username" example:"johndoe"`
	IsActive  bool      `json:"is_active" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-15T10:30:00Z"`
}

// UpdateUserRequest represents a partial profile update. Pointer fields allow
// the client to send only what should change; nil fields keep their prior
// values.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// toUserResponse maps a user model to its public projection.
func toUserResponse(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
