// Package handlers serves the book listings and the cart.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/auth"
	"github.com/Ultrahd-dev/student-portal/internal/catalog"
	"github.com/Ultrahd-dev/student-portal/internal/web"
	"github.com/Ultrahd-dev/student-portal/internal/web/views"
)

// Notices shown by the catalog handlers
const (
	NoticeAdded           = "Book added to cart."
	NoticeAlreadyInCart   = "Book already in cart."
	NoticeBookNotFound    = "Book not found."
	NoticeAddFailed       = "Error adding to cart."
	NoticeBooksFailed     = "Unable to load books."
	NoticeCartFailed      = "Error loading cart."
	NoticeLoginToAdd      = "Please log in to add to cart."
	NoticeLoginToViewCart = "Please log in to view your cart."
)

// CatalogService is the catalog logic used by the handlers
type CatalogService interface {
	ListBooks(ctx context.Context) ([]catalog.Book, error)
	AddToCart(ctx context.Context, userID uuid.UUID, bookID int64) error
	Cart(ctx context.Context, userID uuid.UUID) ([]catalog.Book, error)
}

// BookHandler handles the catalog routes
type BookHandler struct {
	catalogService CatalogService
}

// NewBookHandler creates a new catalog handler
func NewBookHandler(catalogService CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

// Books lists the catalog with "add to cart" links
// GET /books
func (h *BookHandler) Books(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return h.list(r, "Books", true)
}

// Library lists the catalog read-only
// GET /library
func (h *BookHandler) Library(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return h.list(r, "Library", false)
}

func (h *BookHandler) list(r *http.Request, title string, withCart bool) (web.Result, error) {
	books, err := h.catalogService.ListBooks(r.Context())
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeBooksFailed, "/")
	}
	return web.Page(title, views.Books(books, withCart)), nil
}

// AddToCart adds a book to the current account's cart. Requires a session.
// GET /add_to_cart/{book_id}
func (h *BookHandler) AddToCart(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		return web.Result{}, web.Fail(auth.ErrUnauthenticated, NoticeLoginToAdd, "/")
	}

	bookID, err := strconv.ParseInt(r.PathValue("book_id"), 10, 64)
	if err != nil {
		return web.Result{Title: "Not found", Status: http.StatusNotFound, Page: views.NotFound()}, nil
	}

	err = h.catalogService.AddToCart(r.Context(), account.ID, bookID)
	switch {
	case err == nil:
		slog.Info("book added to cart",
			slog.Int64("book_id", bookID),
			slog.String("user_id", account.ID.String()))
		return web.Redirect("/books", NoticeAdded), nil
	case errors.Is(err, catalog.ErrAlreadyInCart):
		return web.Redirect("/books", NoticeAlreadyInCart), nil
	case errors.Is(err, catalog.ErrBookNotFound):
		return web.Redirect("/books", NoticeBookNotFound), nil
	default:
		return web.Result{}, web.Fail(err, NoticeAddFailed, "/books")
	}
}

// Cart lists the books in the current account's cart. Requires a session.
// GET /cart
func (h *BookHandler) Cart(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		return web.Result{}, web.Fail(auth.ErrUnauthenticated, NoticeLoginToViewCart, "/")
	}

	books, err := h.catalogService.Cart(r.Context(), account.ID)
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeCartFailed, "/books")
	}
	return web.Page("Your cart", views.Cart(books)), nil
}
