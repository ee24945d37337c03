// Package users provides self-service profile management for the currently
// authenticated user: fetching the profile and applying partial updates.
package users

import (
	"context"
	"strings"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// UserService contains the business logic for profile operations.
type UserService struct {
	store auth.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store auth.UserStore) *UserService {
	return &UserService{store: store}
}

// GetProfile returns the public projection of the given user. The middleware
// already resolved the record, so no extra lookup is needed.
func (s *UserService) GetProfile(user *auth.User) *UserResponse {
	return toUserResponse(user)
}

// UpdateProfile applies a partial update to the current user's profile.
// Changed email and username are re-validated for uniqueness against all other
// users; a new password is hashed before it reaches the store, and the
// plaintext goes no further than this function.
func (s *UserService) UpdateProfile(ctx context.Context, current *auth.User, req *UpdateUserRequest) (*UserResponse, error) {
	var upd auth.UserUpdate

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != current.Email {
			other, err := s.store.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, apperror.NewBadRequestError("Email already registered", nil)
			}
		}
		upd.Email = &email
	}

	if req.Username != nil {
		if *req.Username != current.Username {
			other, err := s.store.GetByUsername(ctx, *req.Username)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, apperror.NewBadRequestError("Username already taken", nil)
			}
		}
		upd.Username = req.Username
	}

	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.NewInternalError("failed to hash password", err)
		}
		upd.HashedPassword = &hashed
	}

	upd.IsActive = req.IsActive

	updated, err := s.store.Update(ctx, current.ID, upd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}

	return toUserResponse(updated), nil
}
