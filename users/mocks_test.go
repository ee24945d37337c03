package users_test

import (
	"context"
	"strings"
	"time"

	"github.com/user/blogapi-go/auth"
)

// memUserStore is an in-memory auth.UserStore for the profile tests. Lookups
// return (nil, nil) on a miss, matching the store contract.
type memUserStore struct {
	users  map[int]*auth.User
	nextID int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int]*auth.User)}
}

// seed inserts a user with a known password, returning a copy.
func (s *memUserStore) seed(email, username, password string) *auth.User {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}

	s.nextID++
	now := time.Now()
	user := &auth.User{
		ID:             s.nextID,
		Email:          strings.ToLower(email),
		Username:       username,
		HashedPassword: hashed,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.users[user.ID] = user

	out := *user
	return &out
}

func (s *memUserStore) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	created := s.seed(user.Email, user.Username, "")
	created.HashedPassword = user.HashedPassword
	s.users[created.ID].HashedPassword = user.HashedPassword
	return created, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range s.users {
		if user.Email == strings.ToLower(email) {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(ctx context.Context, id int) (*auth.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (s *memUserStore) Update(ctx context.Context, id int, upd auth.UserUpdate) (*auth.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}

	if upd.Email != nil {
		user.Email = strings.ToLower(*upd.Email)
	}
	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.HashedPassword != nil {
		user.HashedPassword = *upd.HashedPassword
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	user.UpdatedAt = time.Now()

	out := *user
	return &out, nil
}
