package web

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSessionName = "portal_flash"

// Flashes keeps one-shot notices in a signed cookie until the next page render
type Flashes struct {
	store *sessions.CookieStore
}

// NewFlashes creates a flash store signed with a key derived from secret
func NewFlashes(secret string, secure bool) *Flashes {
	key := sha256.Sum256([]byte("flash:" + secret))
	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flashes{store: store}
}

// AddNotice queues message for the next rendered page
func (f *Flashes) AddNotice(w http.ResponseWriter, r *http.Request, message string) {
	// a cookie that fails to decode still yields a usable new session
	session, _ := f.store.Get(r, flashSessionName)
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		slog.Error("failed to save notice", slog.String("error", err.Error()))
	}
}

// Pop returns and clears the queued notices
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) []string {
	session, _ := f.store.Get(r, flashSessionName)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("failed to clear notices", slog.String("error", err.Error()))
	}

	notices := make([]string, 0, len(flashes))
	for _, flash := range flashes {
		notices = append(notices, fmt.Sprint(flash))
	}
	return notices
}
