// Package handlers serves registration, login, logout, the dashboard and the profile page.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/auth"
	"github.com/Ultrahd-dev/student-portal/internal/users"
	"github.com/Ultrahd-dev/student-portal/internal/web"
	"github.com/Ultrahd-dev/student-portal/internal/web/views"
)

// Notices shown by the authentication handlers
const (
	NoticeLoginSuccess     = "Login successful."
	NoticeInvalidLogin     = "Invalid credentials."
	NoticeTooManyAttempts  = "Too many login attempts. Please try again later."
	NoticeRegistered       = "Registered successfully. Please login."
	NoticeDuplicateUser    = "Username already exists."
	NoticeRegisterFailed   = "Error while registering. Please try again."
	NoticeLoggedOut        = "You have been logged out."
	NoticeLoginUnavailable = "Unable to log in right now. Please try again."
	NoticeProfileFailed    = "Error loading profile."
	NoticeSessionExpired   = "Please log in again."
)

// UserService is the account logic used by the handlers
type UserService interface {
	Register(ctx context.Context, input users.RegisterInput) (*users.User, error)
	Authenticate(ctx context.Context, username, password string) (*users.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	userService UserService
	sessions    *auth.Sessions
	limiter     *auth.Limiter
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(userService UserService, sessions *auth.Sessions, limiter *auth.Limiter) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		limiter:     limiter,
	}
}

// Home renders the landing page with the login form
// GET /
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Page("Welcome", views.Home()), nil
}

// Login authenticates the submitted credentials and starts a session
// POST /
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	client := clientIP(r)
	if h.limiter.Locked(client) > 0 {
		return web.Redirect("/", NoticeTooManyAttempts), nil
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	user, err := h.userService.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, users.ErrInvalidCredentials) {
		remaining := h.limiter.Fail(client)
		slog.Info("login failed", slog.String("client", client), slog.Int("remaining_attempts", remaining))
		return web.Redirect("/", NoticeInvalidLogin), nil
	}
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeLoginUnavailable, "/")
	}

	h.limiter.Reset(client)
	if err := h.sessions.Issue(w, user.ID, user.Username); err != nil {
		return web.Result{}, web.Fail(err, NoticeLoginUnavailable, "/")
	}

	slog.Info("user logged in", slog.String("user_id", user.ID.String()))
	return web.Redirect("/dashboard", NoticeLoginSuccess), nil
}

// RegisterForm renders the registration form
// GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Page("Register", views.Register()), nil
}

// Register creates a new account
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	input := users.RegisterInput{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	user, err := h.userService.Register(r.Context(), input)
	if errors.Is(err, users.ErrDuplicateUsername) {
		return web.Redirect("/register", NoticeDuplicateUser), nil
	}
	if notice, ok := web.ValidationNotice(err); ok {
		return web.Redirect("/register", notice), nil
	}
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeRegisterFailed, "/register")
	}

	slog.Info("user registered", slog.String("user_id", user.ID.String()))
	return web.Redirect("/", NoticeRegistered), nil
}

// Logout clears the session unconditionally
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	h.sessions.Clear(w)
	return web.Redirect("/", NoticeLoggedOut), nil
}

// Dashboard renders the page shown after login. Requires a session.
// GET /dashboard
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		return web.Result{}, web.Fail(auth.ErrUnauthenticated, NoticeSessionExpired, "/")
	}
	return web.Page("Dashboard", views.Dashboard(account.Username)), nil
}

// Profile shows the current account. Requires a session.
// GET /profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		return web.Result{}, web.Fail(auth.ErrUnauthenticated, NoticeSessionExpired, "/")
	}

	user, err := h.userService.GetUserByID(r.Context(), account.ID)
	if errors.Is(err, users.ErrUserNotFound) {
		h.sessions.Clear(w)
		return web.Redirect("/", NoticeSessionExpired), nil
	}
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeProfileFailed, "/dashboard")
	}

	return web.Page("Profile", views.Profile(user)), nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
