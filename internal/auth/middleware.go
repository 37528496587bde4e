package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bucketbuddy/bucketbuddy/internal/api/respond"
)

// Middleware gates protected routes. Requests that do not resolve to a
// user are rejected with 401 before any handler or store access runs.
func Middleware(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authorizer.Authorize(r.Context(), r)
			if err != nil {
				log.Debug().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("rejected unauthenticated request")
				respond.WriteUnauthorized(w, "Not authorized. Please log in at /login.html")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
