package students

import (
	"time"

	"github.com/google/uuid"
)

// Student is a student registered by an account
type Student struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Course    string    `db:"course"`
	Phone     string    `db:"phone"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Listing is a student joined with the username of the owning account
type Listing struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Course        string `db:"course"`
	Phone         string `db:"phone"`
	OwnerUsername string `db:"username"`
}

// RegisterInput is the student registration form
type RegisterInput struct {
	Name   string `validate:"required,max=200"`
	Email  string `validate:"required,max=200"`
	Course string `validate:"required,max=200"`
	Phone  string `validate:"required,max=50"`
}
