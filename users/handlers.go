// HTTP handlers for the /users/me endpoints.
package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UserHandlers provides HTTP handlers for profile management.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get current user's profile
// @Description Retrieves the profile of the currently authenticated user.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse "User profile"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		auth.WriteJSON(w, http.StatusOK, h.service.GetProfile(user))
	}
}

// HandleUpdateProfile godoc
// @Summary Update current user's profile
// @Description Applies a partial update (email, username, password, active flag)
// to the currently authenticated user's profile.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userProfile body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UserResponse "Updated user profile"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input, duplicate email or username"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /users/me [put]
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError(err.Error(), err))
			return
		}

		updated, err := h.service.UpdateProfile(r.Context(), user, &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, updated)
	}
}
