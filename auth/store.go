package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogapi-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserUpdate describes a partial update to a user record. Nil fields are left
// untouched. HashedPassword must already be hashed; the store never sees
// plaintext passwords.
type UserUpdate struct {
	Email          *string
	Username       *string
	HashedPassword *string
	IsActive       *bool
}

// UserStore is the persistence interface for user records. Lookup methods
// return (nil, nil) when no matching user exists; callers decide what a miss
// means for them.
type UserStore interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Update(ctx context.Context, id int, upd UserUpdate) (*User, error)
}

// pgxUserStore implements UserStore on a pgx connection pool.
type pgxUserStore struct {
	db *pgxpool.Pool
}

// NewUserStore creates a Postgres-backed UserStore.
func NewUserStore(db *pgxpool.Pool) UserStore {
	return &pgxUserStore{db: db}
}

const userColumns = "id, email, username, hashed_password, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *pgxUserStore) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (email, username, hashed_password)
	          VALUES ($1, $2, $3)
	          RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRow(ctx, query, user.Email, user.Username, user.HashedPassword))
	if err != nil {
		// The service checks uniqueness before inserting; this catches the race
		// where a concurrent signup wins between check and insert. Email is
		// reported first, matching the check order.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewBadRequestError("Email already registered", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewBadRequestError("Username already taken", nil)
			}
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return created, nil
}

func (s *pgxUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return user, nil
}

func (s *pgxUserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get user by username", err)
	}
	return user, nil
}

func (s *pgxUserStore) GetByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return user, nil
}

func (s *pgxUserStore) Update(ctx context.Context, id int, upd UserUpdate) (*User, error) {
	// Build the UPDATE statement from the fields that are actually present.
	var setClauses []string
	var args []interface{}
	argID := 1

	if upd.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, strings.ToLower(*upd.Email))
		argID++
	}
	if upd.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *upd.Username)
		argID++
	}
	if upd.HashedPassword != nil {
		setClauses = append(setClauses, fmt.Sprintf("hashed_password = $%d", argID))
		args = append(args, *upd.HashedPassword)
		argID++
	}
	if upd.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argID))
		args = append(args, *upd.IsActive)
		argID++
	}

	if len(setClauses) == 0 {
		return s.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(setClauses, ", "), argID,
	)

	user, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewBadRequestError("Email already registered", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewBadRequestError("Username already taken", nil)
			}
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	return user, nil
}
