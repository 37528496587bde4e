package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/session"
)

func TestCookieSigner_RoundTrip(t *testing.T) {
	signer := NewCookieSigner("test-secret")

	signed, err := signer.Sign("session-123", time.Hour)
	require.NoError(t, err)

	got, err := signer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "session-123", got)
}

func TestCookieSigner_RejectsTamperedValue(t *testing.T) {
	signer := NewCookieSigner("test-secret")
	signed, err := signer.Sign("session-123", time.Hour)
	require.NoError(t, err)

	_, err = signer.Verify(signed + "x")
	assert.Error(t, err)
}

func TestCookieSigner_RejectsForeignSecret(t *testing.T) {
	signed, err := NewCookieSigner("secret-a").Sign("session-123", time.Hour)
	require.NoError(t, err)

	_, err = NewCookieSigner("secret-b").Verify(signed)
	assert.Error(t, err)
}

func TestCookieSigner_RejectsExpired(t *testing.T) {
	signer := NewCookieSigner("test-secret")
	signed, err := signer.Sign("session-123", -time.Minute)
	require.NoError(t, err)

	_, err = signer.Verify(signed)
	assert.Error(t, err)
}

func newSessionRequest(t *testing.T, signer *CookieSigner, sessions session.Store) *http.Request {
	t.Helper()
	sess, err := sessions.Create(context.Background(), model.User{UserID: "583231", Username: "octocat"}, time.Hour)
	require.NoError(t, err)
	signed, err := signer.Sign(sess.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/results", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signed})
	return req
}

func TestSessionAuthorizer_ResolvesUser(t *testing.T) {
	signer := NewCookieSigner("test-secret")
	sessions := session.NewMemoryStore()
	a := NewSessionAuthorizer(signer, sessions)

	req := newSessionRequest(t, signer, sessions)
	user, err := a.Authorize(req.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "583231", user.UserID)
	assert.Equal(t, "octocat", user.Username)
}

func TestSessionAuthorizer_NoCookie(t *testing.T) {
	a := NewSessionAuthorizer(NewCookieSigner("test-secret"), session.NewMemoryStore())

	req := httptest.NewRequest("GET", "/results", nil)
	_, err := a.Authorize(req.Context(), req)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionAuthorizer_DestroyedSession(t *testing.T) {
	signer := NewCookieSigner("test-secret")
	sessions := session.NewMemoryStore()
	a := NewSessionAuthorizer(signer, sessions)

	sess, err := sessions.Create(context.Background(), model.User{UserID: "583231"}, time.Hour)
	require.NoError(t, err)
	signed, err := signer.Sign(sess.ID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, sessions.Delete(context.Background(), sess.ID))

	req := httptest.NewRequest("GET", "/results", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signed})
	_, err = a.Authorize(req.Context(), req)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMiddleware_RejectsAnonymous(t *testing.T) {
	a := NewSessionAuthorizer(NewCookieSigner("test-secret"), session.NewMemoryStore())
	var reached bool
	h := Middleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/results", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, reached, "handler must not run for anonymous requests")
}

func TestMiddleware_PassesResolvedUser(t *testing.T) {
	signer := NewCookieSigner("test-secret")
	sessions := session.NewMemoryStore()
	a := NewSessionAuthorizer(signer, sessions)

	var got *model.User
	h := Middleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newSessionRequest(t, signer, sessions))

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "583231", got.UserID)
}

func TestDevAuthorizer_AlwaysResolves(t *testing.T) {
	a := NewDevAuthorizer()
	req := httptest.NewRequest("GET", "/results", nil)

	user, err := a.Authorize(req.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, DevUserID, user.UserID)
}
