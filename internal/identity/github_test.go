package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/bucketbuddy/bucketbuddy/internal/auth"
	"github.com/bucketbuddy/bucketbuddy/internal/logger"
	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/session"
)

func userFixture() model.User {
	return model.User{UserID: "583231", Username: "octocat", LoginTime: time.Now()}
}

func newTestProvider(t *testing.T) (*GitHubProvider, *session.MemoryStore) {
	t.Helper()
	sessions := session.NewMemoryStore()
	signer := auth.NewCookieSigner("test-secret")
	p := NewGitHubProvider(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "http://localhost:3000/auth/github/callback",
	}, signer, sessions, time.Hour, logger.New("identity-test"))
	return p, sessions
}

// fakeGitHub serves both the token exchange and the profile endpoint.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "gho_testtoken",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gho_testtoken" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    583231,
			"login": "octocat",
		})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestLogin_RedirectsToGitHubWithState(t *testing.T) {
	p, _ := newTestProvider(t)

	req := httptest.NewRequest("GET", "/auth/github", nil)
	rr := httptest.NewRecorder()
	p.Login(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "github.com", loc.Host)
	assert.Equal(t, "client-id", loc.Query().Get("client_id"))

	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	var stateSet bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == stateCookie {
			stateSet = true
			assert.Equal(t, state, c.Value, "state cookie must match redirect state")
		}
	}
	assert.True(t, stateSet, "state cookie not set")
}

func TestCallback_StateMismatchRedirectsToLogin(t *testing.T) {
	p, _ := newTestProvider(t)

	req := httptest.NewRequest("GET", "/auth/github/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "expected"})
	rr := httptest.NewRecorder()
	p.Callback(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, loginRedirect, rr.Header().Get("Location"))
}

func TestCallback_SuccessOpensSession(t *testing.T) {
	p, sessions := newTestProvider(t)
	gh := fakeGitHub(t)
	p.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  gh.URL + "/login/oauth/authorize",
		TokenURL: gh.URL + "/login/oauth/access_token",
	}
	p.rest.SetBaseURL(gh.URL)

	req := httptest.NewRequest("GET", "/auth/github/callback?state=good&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "good"})
	rr := httptest.NewRecorder()
	p.Callback(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, doneRedirect, rr.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "session cookie not set")

	sessionID, err := p.signer.Verify(sessionCookie.Value)
	require.NoError(t, err)
	sess, err := sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "583231", sess.User.UserID)
	assert.Equal(t, "octocat", sess.User.Username)
}

func TestFetchProfile(t *testing.T) {
	p, _ := newTestProvider(t)
	gh := fakeGitHub(t)
	p.rest.SetBaseURL(gh.URL)

	user, err := p.FetchProfile(context.Background(), "gho_testtoken")
	require.NoError(t, err)
	assert.Equal(t, "583231", user.UserID)
	assert.Equal(t, "octocat", user.Username)
}

func TestFetchProfile_BadToken(t *testing.T) {
	p, _ := newTestProvider(t)
	gh := fakeGitHub(t)
	p.rest.SetBaseURL(gh.URL)

	_, err := p.FetchProfile(context.Background(), "wrong")
	assert.Error(t, err)
}

func TestLogout_DestroysSessionAndClearsCookie(t *testing.T) {
	p, sessions := newTestProvider(t)
	ctx := context.Background()

	sess, err := sessions.Create(ctx, userFixture(), time.Hour)
	require.NoError(t, err)
	signed, err := p.signer.Sign(sess.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: signed})
	rr := httptest.NewRecorder()
	p.Logout(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, loginRedirect, rr.Header().Get("Location"))

	_, err = sessions.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNoSession)

	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie not cleared")
}
