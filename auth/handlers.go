// HTTP handlers for the auth endpoints, plus the shared response helpers the
// other handler packages reuse.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/blogapi-go/apperror"
)

// validate is the shared validator instance for auth request DTOs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleSignup godoc
// @Summary User signup
// @Description Registers a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupBody body auth.SignupRequest true "User signup details"
// @Success 200 {object} auth.User "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input, duplicate email or username"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/signup [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewValidationError(err.Error(), err))
			return
		}

		user, err := h.service.Signup(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, user)
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Authenticates a user and returns a bearer token. Expects a
// form-encoded body where the username field carries the user's email.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} auth.TokenResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields or inactive account"
// @Failure 401 {object} apperror.ErrorResponse "Incorrect email or password"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid form body: "+err.Error(), nil))
			return
		}

		// OAuth2 password-flow field names: "username" carries the email.
		email := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			WriteError(w, r, apperror.NewBadRequestError("username and password are required", nil))
			return
		}

		resp, err := h.service.Login(r.Context(), email, password)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// WriteJSON serializes data to JSON and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized apperror JSON response.
// Errors that are not *apperror.AppError are wrapped as internal errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred: "+err.Error(), err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
