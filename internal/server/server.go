// Package server wires the route handlers into the HTTP router.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ultrahd-dev/student-portal/internal/auth"
	cataloghandlers "github.com/Ultrahd-dev/student-portal/internal/catalog/handlers"
	studenthandlers "github.com/Ultrahd-dev/student-portal/internal/students/handlers"
	userhandlers "github.com/Ultrahd-dev/student-portal/internal/users/handlers"
	"github.com/Ultrahd-dev/student-portal/internal/web"
)

// Guard notices for routes that need a session
const (
	NoticeLoginForDashboard = "Please log in to continue."
	NoticeLoginForProfile   = "Please log in to view your profile."
)

// Deps are the collaborators of the router
type Deps struct {
	Users    userhandlers.UserService
	Students studenthandlers.StudentService
	Catalog  cataloghandlers.CatalogService

	Sessions *auth.Sessions
	Limiter  *auth.Limiter
	Flashes  *web.Flashes
	Log      *slog.Logger

	// Ping checks the database for /healthz. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// New builds the application handler
func New(d Deps) http.Handler {
	respond := web.NewResponder(d.Flashes, d.Log)
	h := respond.Handle
	mw := auth.NewMiddleware(d.Sessions, d.Flashes, "/")
	guard := func(notice string, fn web.HandlerFunc) http.Handler {
		return mw.RequireSession(notice)(h(fn))
	}

	authHandler := userhandlers.NewAuthHandler(d.Users, d.Sessions, d.Limiter)
	studentHandler := studenthandlers.NewStudentHandler(d.Students)
	bookHandler := cataloghandlers.NewBookHandler(d.Catalog)

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", h(authHandler.Home))
	mux.Handle("POST /{$}", h(authHandler.Login))
	mux.Handle("GET /register", h(authHandler.RegisterForm))
	mux.Handle("POST /register", h(authHandler.Register))
	mux.Handle("GET /logout", h(authHandler.Logout))
	mux.Handle("GET /dashboard", guard(NoticeLoginForDashboard, authHandler.Dashboard))
	mux.Handle("GET /profile", guard(NoticeLoginForProfile, authHandler.Profile))

	mux.Handle("GET /student_register", guard(studenthandlers.NoticeLoginRequired, studentHandler.Form))
	mux.Handle("POST /student_register", guard(studenthandlers.NoticeLoginRequired, studentHandler.Register))
	mux.Handle("GET /students", h(studentHandler.List))

	mux.Handle("GET /books", h(bookHandler.Books))
	mux.Handle("GET /library", h(bookHandler.Library))
	mux.Handle("GET /add_to_cart/{book_id}", guard(cataloghandlers.NoticeLoginToAdd, bookHandler.AddToCart))
	mux.Handle("GET /cart", guard(cataloghandlers.NoticeLoginToViewCart, bookHandler.Cart))

	mux.Handle("GET /about", h(about))
	mux.Handle("GET /college", h(college))
	mux.Handle("GET /contact", h(contactForm))
	mux.Handle("POST /contact", h(contact))

	mux.HandleFunc("GET /healthz", health(d.Ping))
	mux.Handle("/", h(notFound))

	return web.LogRequests(d.Log, mw.LoadSession(mux))
}

func health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
