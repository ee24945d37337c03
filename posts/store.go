package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogapi-go/apperror"
)

// PostUpdate describes a partial update to a post. Nil fields are left
// untouched.
type PostUpdate struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

// PostStore is the persistence interface for posts. List and the published
// filter live here; ownership checks belong to the service layer. GetByID
// returns (nil, nil) when the post does not exist, and deliberately ignores
// the published flag so mutation paths can see unpublished posts.
type PostStore interface {
	List(ctx context.Context, skip, limit int) ([]Post, int, error)
	GetByID(ctx context.Context, id int) (*Post, error)
	Create(ctx context.Context, post *Post) (*Post, error)
	Update(ctx context.Context, id int, upd PostUpdate) (*Post, error)
	Delete(ctx context.Context, id int) error
}

// pgxPostStore implements PostStore on a pgx connection pool.
type pgxPostStore struct {
	db *pgxpool.Pool
}

// NewPostStore creates a Postgres-backed PostStore.
func NewPostStore(db *pgxpool.Pool) PostStore {
	return &pgxPostStore{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.is_published, p.author_id, p.created_at, p.updated_at,
	       u.id, u.username, u.email
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (*Post, error) {
	var post Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.IsPublished,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Username,
		&post.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns a page of published posts in insertion order, plus the total
// count of published posts before pagination.
func (s *pgxPostStore) List(ctx context.Context, skip, limit int) ([]Post, int, error) {
	var total int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE is_published`).Scan(&total)
	if err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to count posts", err)
	}

	rows, err := s.db.Query(ctx, postSelect+`
		WHERE p.is_published
		ORDER BY p.id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	items := make([]Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, apperror.NewDatabaseError("failed to scan post", err)
		}
		items = append(items, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to read posts", err)
	}

	return items, total, nil
}

func (s *pgxPostStore) GetByID(ctx context.Context, id int) (*Post, error) {
	post, err := scanPost(s.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return post, nil
}

func (s *pgxPostStore) Create(ctx context.Context, post *Post) (*Post, error) {
	query := `INSERT INTO posts (title, content, is_published, author_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(ctx, query, post.Title, post.Content, post.IsPublished, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

func (s *pgxPostStore) Update(ctx context.Context, id int, upd PostUpdate) (*Post, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *upd.Title)
		argID++
	}
	if upd.Content != nil {
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argID))
		args = append(args, *upd.Content)
		argID++
	}
	if upd.IsPublished != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_published = $%d", argID))
		args = append(args, *upd.IsPublished)
		argID++
	}

	if len(setClauses) == 0 {
		return s.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), argID)

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return s.GetByID(ctx, id)
}

func (s *pgxPostStore) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	return nil
}
