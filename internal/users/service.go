package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ultrahd-dev/student-portal/internal/validation"
)

// Service provides user business logic
type Service struct {
	repo *Repository
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService creates a new user service. cost is the bcrypt work factor.
func NewService(repo *Repository, cost int) *Service {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, cost: cost}
}

// bcrypt rejects longer passwords
const maxPasswordBytes = 72

// RegisterInput contains data needed to register an account
type RegisterInput struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=72"`
}

// Register validates input, hashes the password and stores a new account.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, &validation.Error{Messages: []string{fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes)}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks username and password. An unknown username and a wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		// keep timing close to the wrong password path
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}
