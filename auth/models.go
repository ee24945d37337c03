// Package auth is responsible for authentication: user signup, login, token
// issuing/verification, password hashing, and the middleware that resolves the
// current user on protected routes. The User model and its store live here as
// well, since every other module consumes users through this package.
package auth

import "time"

// User represents a user account.
// The json:"-" tag on HashedPassword keeps the hash out of every API response;
// from the API's perspective the password is write-only.
type User struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
