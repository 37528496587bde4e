package auth

import (
	"context"
	"net/http"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/session"
)

// SessionAuthorizer resolves requests through the signed session cookie:
// cookie -> verified session ID -> server-side session -> user.
type SessionAuthorizer struct {
	signer   *CookieSigner
	sessions session.Store
}

func NewSessionAuthorizer(signer *CookieSigner, sessions session.Store) *SessionAuthorizer {
	return &SessionAuthorizer{signer: signer, sessions: sessions}
}

// Authorize fails closed: any missing or invalid step yields
// ErrUnauthorized without touching the item store.
func (a *SessionAuthorizer) Authorize(ctx context.Context, r *http.Request) (*model.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrUnauthorized
	}
	sessionID, err := a.signer.Verify(cookie.Value)
	if err != nil {
		return nil, ErrUnauthorized
	}
	sess, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user := sess.User
	return &user, nil
}
