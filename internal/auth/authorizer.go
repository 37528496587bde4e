package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
)

// ErrUnauthorized is returned whenever a request cannot be resolved to a
// user: missing cookie, bad signature, expired or destroyed session.
var ErrUnauthorized = errors.New("not authorized")

// Authorizer resolves an inbound request to an authenticated user or
// rejects it. The OAuth handshake that created the session is out of its
// hands; given a request it answers only "who is this".
type Authorizer interface {
	Authorize(ctx context.Context, r *http.Request) (*model.User, error)
}

type contextKey struct{}

var userKey contextKey

// WithUser stores the resolved user on the context.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the resolved user, or nil if the request was not
// authenticated.
func UserFrom(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}
