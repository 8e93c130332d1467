// Package auth issues session cookies and guards routes that need a logged in account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/jwt"
)

// ErrUnauthenticated is returned when a request carries no valid session
var ErrUnauthenticated = errors.New("unauthenticated")

type contextKey string

const accountContextKey contextKey = "account"

// Account is the authenticated account attached to a request
type Account struct {
	ID       uuid.UUID
	Username string
}

// WithAccount returns a copy of ctx carrying account.
func WithAccount(ctx context.Context, account *Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}

// AccountFromContext extracts the authenticated account from the request context
func AccountFromContext(ctx context.Context) (*Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*Account)
	return account, ok && account != nil
}

// Sessions stores the signed session token in an HttpOnly cookie
type Sessions struct {
	tokens     *jwt.Manager
	cookieName string
	secure     bool
}

// NewSessions creates a session cookie manager
func NewSessions(tokens *jwt.Manager, cookieName string, secure bool) *Sessions {
	return &Sessions{
		tokens:     tokens,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Issue writes a fresh session cookie for the account.
func (s *Sessions) Issue(w http.ResponseWriter, userID uuid.UUID, username string) error {
	token, err := s.tokens.GenerateToken(userID, username)
	if err != nil {
		return fmt.Errorf("failed to issue session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.Lifetime().Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Lookup returns the account of the session cookie, or ErrUnauthenticated.
func (s *Sessions) Lookup(r *http.Request) (*Account, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.ParseToken(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	return &Account{ID: claims.UserID, Username: claims.Username}, nil
}
