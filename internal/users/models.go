package users

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateUsername is returned when registering a taken username
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by lookups that match no row
	ErrUserNotFound = errors.New("user not found")
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
