package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ultrahd-dev/student-portal/internal/database"
	"github.com/Ultrahd-dev/student-portal/internal/validation"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(NewRepository(db), bcrypt.MinCost), mock
}

func userRow(id uuid.UUID, username, hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(id.String(), username, hash, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestRegisterCreatesUser(t *testing.T) {
	svc, mock := newTestService(t)
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUsernameDoesNotInsert(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "pw2"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUniqueViolationMapsToDuplicate(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStorageFailureRollsBack(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, database.ErrStorage)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterValidation(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "", Password: "pw"})

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Messages, "username is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	svc, mock := newTestService(t)

	// 40 runes, 80 bytes
	password := strings.Repeat("é", 40)
	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: password})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"password must be at most 72 bytes"}, verr.Messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()

	t.Run("correct password", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectQuery(`SELECT id, username, password_hash, created_at FROM users WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(userRow(id, "alice", string(hash)))

		user, err := svc.Authenticate(context.Background(), "alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(userRow(id, "alice", string(hash)))

		_, err := svc.Authenticate(context.Background(), "alice", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("mallory").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

		_, err := svc.Authenticate(context.Background(), "mallory", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage failure is not reported as bad credentials", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectQuery(`FROM users`).WillReturnError(errors.New("connection reset"))

		_, err := svc.Authenticate(context.Background(), "alice", "pw1")
		assert.ErrorIs(t, err, database.ErrStorage)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUserByID(t *testing.T) {
	svc, mock := newTestService(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(userRow(id, "alice", "hash"))

	user, err := svc.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))
	_, err = svc.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
