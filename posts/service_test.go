package posts_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/posts"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func testUser(id int) *auth.User {
	return &auth.User{
		ID:       id,
		Email:    fmt.Sprintf("user%d@example.com", id),
		Username: fmt.Sprintf("user%d", id),
		IsActive: true,
	}
}

func createPostRequest() posts.CreatePostRequest {
	return posts.CreatePostRequest{
		Title:   "My First Post",
		Content: "Some content long enough to pass validation.",
	}
}

func TestCreateDefaultsToPublished(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())
	author := testUser(1)

	post, err := service.Create(context.Background(), createPostRequest(), author)
	require.NoError(t, err)

	assert.True(t, post.IsPublished)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, author.Username, post.Author.Username)
	assert.Equal(t, author.Email, post.Author.Email)
	assert.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreateExplicitlyUnpublished(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	req := createPostRequest()
	req.IsPublished = boolPtr(false)

	post, err := service.Create(context.Background(), req, testUser(1))
	require.NoError(t, err)
	assert.False(t, post.IsPublished)

	// Unpublished posts are invisible to reads.
	_, err = service.Get(context.Background(), post.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetPublishedPost(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	created, err := service.Create(context.Background(), createPostRequest(), testUser(1))
	require.NoError(t, err)

	got, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
}

func TestGetMissingPost(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	_, err := service.Get(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
}

func TestVisibilityFollowsPublishedFlag(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())
	author := testUser(1)

	created, err := service.Create(context.Background(), createPostRequest(), author)
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, posts.UpdatePostRequest{
		IsPublished: boolPtr(false),
	}, author)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), created.ID)
	assert.True(t, apperror.IsNotFound(err))

	// The owner can still update it while hidden, including republishing.
	_, err = service.Update(context.Background(), created.ID, posts.UpdatePostRequest{
		IsPublished: boolPtr(true),
	}, author)
	require.NoError(t, err)

	got, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
}

func TestListPagination(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())
	author := testUser(1)

	for i := 0; i < 15; i++ {
		req := createPostRequest()
		req.Title = fmt.Sprintf("Post %02d", i)
		_, err := service.Create(context.Background(), req, author)
		require.NoError(t, err)
	}

	first, err := service.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Len(t, first.Posts, 10)
	assert.Equal(t, 15, first.Total)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 10, first.PerPage)

	second, err := service.List(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, second.Posts, 5)
	assert.Equal(t, 15, second.Total)
	assert.Equal(t, 2, second.Page)

	// Pages come back in stable id order with no overlap.
	assert.Equal(t, "Post 00", first.Posts[0].Title)
	assert.Equal(t, "Post 10", second.Posts[0].Title)
}

func TestListSkipsUnpublished(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())
	author := testUser(1)

	published, err := service.Create(context.Background(), createPostRequest(), author)
	require.NoError(t, err)

	hidden := createPostRequest()
	hidden.IsPublished = boolPtr(false)
	_, err = service.Create(context.Background(), hidden, author)
	require.NoError(t, err)

	page, err := service.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, published.ID, page.Posts[0].ID)
}

func TestUpdatePartial(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())
	author := testUser(1)

	created, err := service.Create(context.Background(), createPostRequest(), author)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := service.Update(context.Background(), created.ID, posts.UpdatePostRequest{
		Title: strPtr("A Better Title"),
	}, author)
	require.NoError(t, err)

	assert.Equal(t, "A Better Title", updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.True(t, updated.IsPublished)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateByNonOwner(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	created, err := service.Create(context.Background(), createPostRequest(), testUser(1))
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, posts.UpdatePostRequest{
		Title: strPtr("Hijacked"),
	}, testUser(2))
	assert.True(t, apperror.IsForbidden(err))
}

func TestUpdateMissingPost(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	// A missing id is 404 for everyone, owner or not.
	_, err := service.Update(context.Background(), 999, posts.UpdatePostRequest{
		Title: strPtr("Nothing here"),
	}, testUser(2))
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeletePost(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())
	author := testUser(1)

	created, err := service.Create(context.Background(), createPostRequest(), author)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID, author))

	_, err = service.Get(context.Background(), created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteByNonOwner(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	created, err := service.Create(context.Background(), createPostRequest(), testUser(1))
	require.NoError(t, err)

	err = service.Delete(context.Background(), created.ID, testUser(2))
	assert.True(t, apperror.IsForbidden(err))
}

func TestDeleteMissingPost(t *testing.T) {
	service := posts.NewPostService(newMemPostStore())

	err := service.Delete(context.Background(), 999, testUser(1))
	assert.True(t, apperror.IsNotFound(err))
}
