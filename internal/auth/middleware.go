package auth

import (
	"log/slog"
	"net/http"
)

// Notifier records a notice shown on the next rendered page
type Notifier interface {
	AddNotice(w http.ResponseWriter, r *http.Request, message string)
}

// Middleware provides the session middlewares
type Middleware struct {
	sessions  *Sessions
	notices   Notifier
	loginPath string
}

// NewMiddleware creates the session middlewares. Unauthenticated requests
// to guarded routes are redirected to loginPath.
func NewMiddleware(sessions *Sessions, notices Notifier, loginPath string) *Middleware {
	return &Middleware{
		sessions:  sessions,
		notices:   notices,
		loginPath: loginPath,
	}
}

// LoadSession attaches the session account, when there is a valid one, to
// the request context. Invalid cookies are cleared.
func (m *Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := m.sessions.Lookup(r)
		if err != nil {
			if _, cookieErr := r.Cookie(m.sessions.cookieName); cookieErr == nil {
				slog.Debug("dropping invalid session", slog.String("error", err.Error()))
				m.sessions.Clear(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
	})
}

// RequireSession redirects requests without an account to the login page
// with notice. It expects LoadSession to run first.
func (m *Middleware) RequireSession(notice string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := AccountFromContext(r.Context()); !ok {
				slog.Info("rejecting unauthenticated request",
					slog.String("path", r.URL.Path),
					slog.String("error", ErrUnauthenticated.Error()))
				if notice != "" {
					m.notices.AddNotice(w, r, notice)
				}
				http.Redirect(w, r, m.loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
