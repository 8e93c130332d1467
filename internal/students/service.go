package students

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/validation"
)

// Service provides student registration and listing
type Service struct {
	repo *Repository
}

// NewService creates a new students service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a student owned by ownerID
func (s *Service) Register(ctx context.Context, ownerID uuid.UUID, input RegisterInput) (*Student, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Course = strings.TrimSpace(input.Course)
	input.Phone = strings.TrimSpace(input.Phone)

	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	student := &Student{
		Name:   input.Name,
		Email:  input.Email,
		Course: input.Course,
		Phone:  input.Phone,
		UserID: ownerID,
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to register student: %w", err)
	}

	return student, nil
}

// List returns all students with their owning usernames
func (s *Service) List(ctx context.Context) ([]Listing, error) {
	listings, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return listings, nil
}
