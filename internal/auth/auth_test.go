package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ultrahd-dev/student-portal/internal/jwt"
)

type recordedNotices struct {
	messages []string
}

func (n *recordedNotices) AddNotice(w http.ResponseWriter, r *http.Request, message string) {
	n.messages = append(n.messages, message)
}

func newSessions() *Sessions {
	return NewSessions(jwt.NewManager("test-secret", time.Hour), "portal_session", false)
}

func sessionCookie(t *testing.T, s *Sessions, id uuid.UUID, username string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, s.Issue(rec, id, username))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionIssueAndLookup(t *testing.T) {
	s := newSessions()
	id := uuid.New()

	cookie := sessionCookie(t, s, id, "alice")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)

	account, err := s.Lookup(req)
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "alice", account.Username)
}

func TestSessionLookupWithoutCookie(t *testing.T) {
	_, err := newSessions().Lookup(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionLookupTampered(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "forged"})

	_, err := newSessions().Lookup(req)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionClear(t *testing.T) {
	rec := httptest.NewRecorder()
	newSessions().Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRequireSession(t *testing.T) {
	s := newSessions()
	notices := &recordedNotices{}
	mw := NewMiddleware(s, notices, "/")

	var seen *Account
	protected := mw.LoadSession(mw.RequireSession("Please log in.")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = AccountFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("no session redirects with notice", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, []string{"Please log in."}, notices.messages)
		assert.Nil(t, seen)
	})

	t.Run("valid session passes account through", func(t *testing.T) {
		id := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.AddCookie(sessionCookie(t, s, id, "alice"))

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, id, seen.ID)
	})

	t.Run("invalid cookie is cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: "forged"})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestLimiterLocksAfterMaxAttempts(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(3, 15*time.Minute, 10*time.Minute)
	l.now = func() time.Time { return now }

	assert.Equal(t, 2, l.Fail("10.0.0.1"))
	assert.Equal(t, 1, l.Fail("10.0.0.1"))
	assert.Zero(t, l.Locked("10.0.0.1"))
	assert.Equal(t, 0, l.Fail("10.0.0.1"))

	assert.Equal(t, 10*time.Minute, l.Locked("10.0.0.1"))
	assert.Zero(t, l.Locked("10.0.0.2"))

	now = now.Add(11 * time.Minute)
	assert.Zero(t, l.Locked("10.0.0.1"))
}

func TestLimiterWindowAndReset(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(2, time.Minute, time.Minute)
	l.now = func() time.Time { return now }

	l.Fail("ip")
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, l.Fail("ip"))

	l.Reset("ip")
	assert.Equal(t, 1, l.Fail("ip"))
	assert.Zero(t, l.Locked("ip"))
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0, time.Minute, time.Minute)
	for i := 0; i < 10; i++ {
		l.Fail("ip")
	}
	assert.Zero(t, l.Locked("ip"))
}
