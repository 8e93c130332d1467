// Package students stores the students registered by accounts.
package students

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ultrahd-dev/student-portal/internal/database"
)

// Repository provides access to the students table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new students repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateStudent inserts student in its own transaction and fills in the
// generated ID and creation time.
func (r *Repository) CreateStudent(ctx context.Context, student *Student) error {
	query, args, err := database.Builder.
		Insert("students").
		Columns("name", "email", "course", "phone", "user_id").
		Values(student.Name, student.Email, student.Course, student.Phone, student.UserID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert student query: %w", err)
	}

	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query, args...).Scan(&student.ID, &student.CreatedAt)
		return database.Wrap("create student", err)
	})
}

// ListStudents returns every student with the owning username, oldest first
func (r *Repository) ListStudents(ctx context.Context) ([]Listing, error) {
	query, args, err := database.Builder.
		Select("s.id", "s.name", "s.email", "s.course", "s.phone", "u.username").
		From("students s").
		Join("users u ON s.user_id = u.id").
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list students", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Course, &l.Phone, &l.OwnerUsername); err != nil {
			return nil, database.Wrap("scan student", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate students", err)
	}

	return listings, nil
}
