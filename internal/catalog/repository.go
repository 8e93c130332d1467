// Package catalog provides the book catalog and the per-account cart.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/database"
)

// Repository provides access to the books and cart tables
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns every book ordered by id
func (r *Repository) ListBooks(ctx context.Context) ([]Book, error) {
	return r.queryBooks(ctx, "list books", database.Builder.
		Select("id", "name", "about", "author").
		From("books").
		OrderBy("id"))
}

// CartBooks returns the books in the cart of userID
func (r *Repository) CartBooks(ctx context.Context, userID uuid.UUID) ([]Book, error) {
	return r.queryBooks(ctx, "list cart", database.Builder.
		Select("b.id", "b.name", "b.about", "b.author").
		From("cart c").
		Join("books b ON c.book_id = b.id").
		Where("c.user_id = ?", userID).
		OrderBy("c.added_at", "b.id"))
}

// AddToCart adds bookID to the cart of userID. The existence check and the
// insert run in one transaction.
func (r *Repository) AddToCart(ctx context.Context, userID uuid.UUID, bookID int64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := database.Builder.
			Select("1").
			From("cart").
			Where("user_id = ?", userID).
			Where("book_id = ?", bookID).
			Limit(1).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build cart lookup: %w", err)
		}

		var one int
		err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
		switch {
		case err == nil:
			return ErrAlreadyInCart
		case !errors.Is(err, sql.ErrNoRows):
			return database.Wrap("check cart", err)
		}

		query, args, err = database.Builder.
			Insert("cart").
			Columns("user_id", "book_id").
			Values(userID, bookID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build cart insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			switch {
			case database.IsUniqueViolation(err):
				return ErrAlreadyInCart
			case database.IsForeignKeyViolation(err):
				return ErrBookNotFound
			}
			return database.Wrap("add to cart", err)
		}
		return nil
	})
}

func (r *Repository) queryBooks(ctx context.Context, op string, builder sq.SelectBuilder) ([]Book, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap(op, err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Name, &b.About, &b.Author); err != nil {
			return nil, database.Wrap(op, err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap(op, err)
	}

	return books, nil
}
