package auth

import (
	"context"
	"strings"

	"github.com/user/blogapi-go/apperror"
)

// AuthService provides signup and login. It owns the password hashing and token
// issuing; persistence goes through the injected UserStore.
type AuthService struct {
	store  UserStore
	tokens *TokenService
}

// NewAuthService creates an AuthService with its dependencies injected.
func NewAuthService(store UserStore, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Signup creates a new user account. Uniqueness is checked email first, then
// username, so a request conflicting on both reports the email conflict.
// The returned user never serializes its password hash.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	email := strings.ToLower(req.Email)

	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("Email already registered", nil)
	}

	existing, err = s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("Username already taken", nil)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	return s.store.Create(ctx, &User{
		Email:          email,
		Username:       req.Username,
		HashedPassword: hashed,
	})
}

// Login authenticates a user by email and password and returns a bearer token.
// Unknown email and wrong password produce the identical error, so a caller
// cannot probe which of the two failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(password, user.HashedPassword) {
		return nil, apperror.NewAuthError("Incorrect email or password", nil)
	}

	if !user.IsActive {
		return nil, apperror.NewBadRequestError("Inactive user", nil)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate token", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// CurrentUser resolves a verified token subject back to a user record. It is
// the second half of the middleware's work, split out so it can be exercised
// directly.
func (s *AuthService) CurrentUser(ctx context.Context, subject string) (*User, error) {
	user, err := s.store.GetByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewAuthError("Could not validate credentials", nil)
	}
	if !user.IsActive {
		return nil, apperror.NewBadRequestError("Inactive user", nil)
	}
	return user, nil
}
