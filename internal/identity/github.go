// Package identity drives the GitHub OAuth handshake that populates
// sessions. The rest of the service only ever sees the resolved user.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/bucketbuddy/bucketbuddy/internal/auth"
	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/session"
)

const (
	stateCookie   = "bb_oauth_state"
	loginRedirect = "/login.html"
	doneRedirect  = "/results.html"
)

// Config carries the GitHub app credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// GitHubProvider handles /auth/github, /auth/github/callback and /logout.
type GitHubProvider struct {
	oauth      *oauth2.Config
	rest       *resty.Client
	signer     *auth.CookieSigner
	sessions   session.Store
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewGitHubProvider(cfg Config, signer *auth.CookieSigner, sessions session.Store, sessionTTL time.Duration, log zerolog.Logger) *GitHubProvider {
	return &GitHubProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		rest: resty.New().
			SetBaseURL("https://api.github.com").
			SetHeader("Accept", "application/vnd.github+json").
			SetTimeout(10 * time.Second),
		signer:     signer,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Login GET /auth/github: issues a state nonce and redirects to GitHub.
func (p *GitHubProvider) Login(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		p.log.Error().Err(err).Msg("failed to generate oauth state")
		http.Redirect(w, r, loginRedirect, http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, p.oauth.AuthCodeURL(state), http.StatusFound)
}

// Callback GET /auth/github/callback: verifies state, exchanges the code,
// fetches the profile and opens a session. Any failure sends the browser
// back to the login page.
func (p *GitHubProvider) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		p.log.Warn().Msg("oauth callback with missing or mismatched state")
		http.Redirect(w, r, loginRedirect, http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	token, err := p.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		p.log.Warn().Err(err).Msg("oauth code exchange failed")
		http.Redirect(w, r, loginRedirect, http.StatusFound)
		return
	}

	user, err := p.FetchProfile(r.Context(), token.AccessToken)
	if err != nil {
		p.log.Error().Err(err).Msg("github profile fetch failed")
		http.Redirect(w, r, loginRedirect, http.StatusFound)
		return
	}

	sess, err := p.sessions.Create(r.Context(), *user, p.sessionTTL)
	if err != nil {
		p.log.Error().Err(err).Msg("session create failed")
		http.Redirect(w, r, loginRedirect, http.StatusFound)
		return
	}
	signed, err := p.signer.Sign(sess.ID, p.sessionTTL)
	if err != nil {
		p.log.Error().Err(err).Msg("session cookie signing failed")
		http.Redirect(w, r, loginRedirect, http.StatusFound)
		return
	}
	auth.SetCookie(w, signed, p.sessionTTL)

	p.log.Info().Str("user_id", user.UserID).Str("username", user.Username).Msg("user logged in")
	http.Redirect(w, r, doneRedirect, http.StatusFound)
}

// Logout POST /logout: destroys the session and clears the cookie.
func (p *GitHubProvider) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if sessionID, err := p.signer.Verify(cookie.Value); err == nil {
			_ = p.sessions.Delete(r.Context(), sessionID)
		}
	}
	auth.ClearCookie(w)
	http.Redirect(w, r, loginRedirect, http.StatusFound)
}

// FetchProfile resolves the access token to the minimal user we keep:
// subject id and display username.
func (p *GitHubProvider) FetchProfile(ctx context.Context, accessToken string) (*model.User, error) {
	var profile struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
	}
	resp, err := p.rest.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&profile).
		Get("/user")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("github /user returned %d", resp.StatusCode())
	}
	if profile.ID == 0 {
		return nil, fmt.Errorf("github /user returned no subject id")
	}
	return &model.User{
		UserID:    strconv.FormatInt(profile.ID, 10),
		Username:  profile.Login,
		LoginTime: time.Now(),
	}, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
