package posts

import (
	"context"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// PostService contains the business logic for the post endpoints: pagination
// metadata, the published-only read policy, and the author-only write policy.
type PostService struct {
	store PostStore
}

// NewPostService creates a new PostService.
func NewPostService(store PostStore) *PostService {
	return &PostService{store: store}
}

// List returns a page of published posts with pagination metadata. The total
// counts every published post, not just the returned page.
func (s *PostService) List(ctx context.Context, skip, limit int) (*PostListResponse, error) {
	items, total, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	page := 1
	if limit > 0 {
		page = skip/limit + 1
	}

	return &PostListResponse{
		Posts:   items,
		Total:   total,
		Page:    page,
		PerPage: limit,
	}, nil
}

// Get returns a post by id. Unpublished posts are invisible here regardless of
// who asks; they surface as not found.
func (s *PostService) Get(ctx context.Context, id int) (*Post, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}
	return post, nil
}

// Create stores a new post owned by the given user. is_published defaults to
// true when the request leaves it out.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest, user *auth.User) (*Post, error) {
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	post := &Post{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: isPublished,
		AuthorID:    user.ID,
		Author: Author{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	return s.store.Create(ctx, post)
}

// Update applies a partial update to a post. Existence is checked before
// ownership, so a non-owner probing a missing id learns nothing beyond 404.
func (s *PostService) Update(ctx context.Context, id int, req UpdatePostRequest, user *auth.User) (*Post, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}
	if post.AuthorID != user.ID {
		return nil, apperror.NewForbiddenError("Not authorized to update this post", nil)
	}

	updated, err := s.store.Update(ctx, id, PostUpdate{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}
	return updated, nil
}

// Delete removes a post. Same ordering as Update: 404 before 403.
func (s *PostService) Delete(ctx context.Context, id int, user *auth.User) error {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	if post.AuthorID != user.ID {
		return apperror.NewForbiddenError("Not authorized to delete this post", nil)
	}

	return s.store.Delete(ctx, id)
}
