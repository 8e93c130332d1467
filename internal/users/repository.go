// Package users provides account storage and authentication.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/database"
)

// Repository provides access to the users table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new users repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var userColumns = []string{"id", "username", "password_hash", "created_at"}

// CreateUser inserts user unless the username is already taken.
// The existence check and the insert share one transaction.
func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		exists, err := usernameExists(ctx, tx, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateUsername
		}

		query, args, err := database.Builder.
			Insert("users").
			Columns("id", "username", "password_hash").
			Values(user.ID, user.Username, user.PasswordHash).
			Suffix("RETURNING created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert user query: %w", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicateUsername
			}
			return database.Wrap("create user", err)
		}
		return nil
	})
}

func usernameExists(ctx context.Context, tx *sql.Tx, username string) (bool, error) {
	query, args, err := database.Builder.
		Select("1").
		From("users").
		Where("username = ?", username).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build username lookup: %w", err)
	}

	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, database.Wrap("check username", err)
	}
	return true, nil
}

// GetUserByUsername fetches a user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx, "get user by username", "username = ?", username)
}

// GetUserByID fetches a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getUser(ctx, "get user by id", "id = ?", id)
}

func (r *Repository) getUser(ctx context.Context, op string, pred string, arg any) (*User, error) {
	query, args, err := database.Builder.
		Select(userColumns...).
		From("users").
		Where(pred, arg).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	user := &User{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, database.Wrap(op, err)
	}

	return user, nil
}
