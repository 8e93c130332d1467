package catalog

import "errors"

var (
	// ErrAlreadyInCart is returned when the book is already in the account's cart
	ErrAlreadyInCart = errors.New("book already in cart")
	// ErrBookNotFound is returned when the book id matches no book
	ErrBookNotFound = errors.New("book not found")
)

// Book is a catalog entry
type Book struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	About  string `db:"about"`
	Author string `db:"author"`
}
