package auth_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// memUserStore is an in-memory auth.UserStore used by the tests in place of
// the Postgres-backed store. It mirrors the store contract: lookups return
// (nil, nil) on a miss, ids are sequential, and unique violations surface as
// the same bad-request errors the real store maps from 23505.
type memUserStore struct {
	users  map[int]*auth.User
	nextID int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int]*auth.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	for _, existing := range s.users {
		if existing.Email == strings.ToLower(user.Email) {
			return nil, apperror.NewBadRequestError("Email already registered", nil)
		}
		if existing.Username == user.Username {
			return nil, apperror.NewBadRequestError("Username already taken", nil)
		}
	}

	s.nextID++
	now := time.Now()
	created := &auth.User{
		ID:             s.nextID,
		Email:          strings.ToLower(user.Email),
		Username:       user.Username,
		HashedPassword: user.HashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.users[created.ID] = created

	out := *created
	return &out, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range s.sorted() {
		if user.Email == strings.ToLower(email) {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	for _, user := range s.sorted() {
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

// deactivate flips a stored user's active flag directly, bypassing the service.
func (s *memUserStore) deactivate(id int) {
	if user, ok := s.users[id]; ok {
		user.IsActive = false
	}
}

// remove deletes a stored user directly, simulating a subject that no longer
// resolves.
func (s *memUserStore) remove(id int) {
	delete(s.users, id)
}

func (s *memUserStore) sorted() []*auth.User {
	out := make([]*auth.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
