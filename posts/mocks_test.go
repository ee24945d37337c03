package posts_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/posts"
)

// memPostStore is an in-memory posts.PostStore mirroring the Postgres store's
// contract: List filters to published posts in insertion order and returns the
// pre-pagination published total, GetByID ignores the published flag and
// returns (nil, nil) on a miss.
type memPostStore struct {
	posts  map[int]*posts.Post
	nextID int
}

func newMemPostStore() *memPostStore {
	return &memPostStore{posts: make(map[int]*posts.Post)}
}

func (s *memPostStore) List(ctx context.Context, skip, limit int) ([]posts.Post, int, error) {
	var published []posts.Post
	for _, post := range s.sorted() {
		if post.IsPublished {
			published = append(published, *post)
		}
	}
	total := len(published)

	if skip > len(published) {
		skip = len(published)
	}
	end := skip + limit
	if end > len(published) {
		end = len(published)
	}

	return published[skip:end], total, nil
}

func (s *memPostStore) GetByID(ctx context.Context, id int) (*posts.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	out := *post
	return &out, nil
}

func (s *memPostStore) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	s.nextID++
	now := time.Now()

	stored := *post
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.posts[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *memPostStore) Update(ctx context.Context, id int, upd posts.PostUpdate) (*posts.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}

	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.IsPublished != nil {
		post.IsPublished = *upd.IsPublished
	}
	post.UpdatedAt = time.Now()

	out := *post
	return &out, nil
}

func (s *memPostStore) Delete(ctx context.Context, id int) error {
	if _, ok := s.posts[id]; !ok {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	delete(s.posts, id)
	return nil
}

func (s *memPostStore) sorted() []*posts.Post {
	out := make([]*posts.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// memUserStore is a minimal in-memory auth.UserStore so the handler tests can
// run the real authentication middleware.
type memUserStore struct {
	users  map[int]*auth.User
	nextID int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int]*auth.User)}
}

func (s *memUserStore) seed(email, username string) *auth.User {
	s.nextID++
	now := time.Now()
	user := &auth.User{
		ID:        s.nextID,
		Email:     strings.ToLower(email),
		Username:  username,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[user.ID] = user

	out := *user
	return &out
}

func (s *memUserStore) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	created := s.seed(user.Email, user.Username)
	s.users[created.ID].HashedPassword = user.HashedPassword
	created.HashedPassword = user.HashedPassword
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
