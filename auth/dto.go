// Data Transfer Objects for the auth endpoints. Struct tags drive both JSON
// mapping and request validation (go-playground/validator).
package auth

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Username string `json:"username" validate:"required,min=3,max=50" example:"newuser"`
	Password string `json:"password" validate:"required,min=8" example:"strongpassword123"`
}

// TokenResponse is returned to the client upon successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}
