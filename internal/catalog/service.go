package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service provides catalog and cart operations
type Service struct {
	repo *Repository
}

// NewService creates a new catalog service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListBooks returns the whole catalog
func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// AddToCart puts a book in the cart. Adding a book twice returns
// ErrAlreadyInCart and leaves the cart unchanged.
func (s *Service) AddToCart(ctx context.Context, userID uuid.UUID, bookID int64) error {
	if bookID <= 0 {
		return ErrBookNotFound
	}

	err := s.repo.AddToCart(ctx, userID, bookID)
	if err == nil || errors.Is(err, ErrAlreadyInCart) || errors.Is(err, ErrBookNotFound) {
		return err
	}
	return fmt.Errorf("failed to add book %d to cart: %w", bookID, err)
}

// Cart returns the books in the account's cart
func (s *Service) Cart(ctx context.Context, userID uuid.UUID) ([]Book, error) {
	books, err := s.repo.CartBooks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return books, nil
}
