// Package posts implements the blog post module: the post model, its store,
// the business logic for listing/reading/writing posts, and the HTTP handlers.
// Reads are public but limited to published posts; writes require an
// authenticated user, and mutation is restricted to the post's author.
package posts

import "time"

// Author is the snapshot of a post's author embedded in post responses.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Post represents a blog post. Each post belongs to exactly one user, the
// author; only the author may mutate or delete it.
type Post struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	AuthorID    int       `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      Author    `json:"author"`
}
