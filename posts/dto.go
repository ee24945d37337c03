// Data Transfer Objects for the posts module.
package posts

// CreatePostRequest represents the payload for creating a post. is_published
// defaults to true when omitted.
type CreatePostRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255" example:"My first post"`
	Content     string `json:"content" validate:"required,min=10" example:"This is the content of my first post."`
	IsPublished *bool  `json:"is_published,omitempty"`
}

// UpdatePostRequest represents a partial update to a post. Nil fields retain
// their prior values.
type UpdatePostRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Content     *string `json:"content,omitempty" validate:"omitempty,min=10"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

// PostListResponse is the paginated list payload. Total counts all published
// posts before pagination is applied; page is presentation metadata derived
// from skip and limit.
type PostListResponse struct {
	Posts   []Post `json:"posts"`
	Total   int    `json:"total" example:"15"`
	Page    int    `json:"page" example:"1"`
	PerPage int    `json:"per_page" example:"10"`
}
